package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxTraceSize is 1MB, enough for several thousand events.
	DefaultMaxTraceSize = 1 << 20
	// EnvMaxTraceSize is the environment variable to override the default
	EnvMaxTraceSize = "REORDER_MAX_TRACE_SIZE"
)

var (
	ErrTraceTooLarge = errors.New("trace exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// CheckTraceSize rejects encoded traces larger than the configured limit.
func CheckTraceSize(raw []byte) error {
	limit := MaxTraceSize()
	if len(raw) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrTraceTooLarge, len(raw), limit)
	}
	if !utf8.Valid(raw) {
		return ErrInvalidUTF8
	}
	return nil
}

// SanitizeLabel strips control characters from a trace name so it can be
// printed to terminals and logs. Invalid UTF-8 is replaced.
func SanitizeLabel(s string) string {
	s = strings.ToValidUTF8(s, "�")

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteRune(' ')
		case !unicode.IsControl(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaxTraceSize returns the size limit, honoring EnvMaxTraceSize.
func MaxTraceSize() int {
	if val := os.Getenv(EnvMaxTraceSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxTraceSize
}
