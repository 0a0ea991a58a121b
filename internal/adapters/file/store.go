package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/reorder/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Store implements ports.TraceStore using the local filesystem.
// Traces are written as JSON; hand-written YAML traces in the same
// directory are readable too.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".reorder/traces".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".reorder", "traces")
	}
	return &Store{BasePath: basePath}
}

var extensions = []string{".json", ".yaml", ".yml"}

// Save persists the trace to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, trace *domain.Trace) error {
	if err := domain.ValidateTraceID(trace.ID); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure trace directory: %w", err)
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+trace.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := filepath.Join(s.BasePath, trace.ID+".json")
	// os.Rename fails on Windows when dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing trace file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to trace: %w", err)
	}

	// The JSON copy is now authoritative.
	for _, ext := range extensions[1:] {
		_ = os.Remove(filepath.Join(s.BasePath, trace.ID+ext))
	}
	return nil
}

// Load reads the trace from <id>.json, <id>.yaml or <id>.yml.
func (s *Store) Load(ctx context.Context, id string) (*domain.Trace, error) {
	if err := domain.ValidateTraceID(id); err != nil {
		return nil, err
	}
	for _, ext := range extensions {
		tr, err := ReadTraceFile(filepath.Join(s.BasePath, id+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if tr.ID == "" {
			tr.ID = id
		}
		return tr, nil
	}
	return nil, domain.ErrTraceNotFound
}

// Delete removes every file stored for the trace.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := domain.ValidateTraceID(id); err != nil {
		return err
	}
	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, id+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete trace file: %w", err)
		}
	}
	return nil
}

// List returns the IDs of all trace files.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list traces: %w", err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ext := filepath.Ext(name)
		if !isTraceExt(ext) {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// ReadTraceFile decodes a trace from a JSON or YAML file, picked by extension.
func ReadTraceFile(path string) (*domain.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeTrace(data, filepath.Ext(path))
}

// DecodeTrace decodes JSON when ext is ".json" and YAML otherwise.
// YAML is a superset of JSON, so unknown extensions still work.
func DecodeTrace(data []byte, ext string) (*domain.Trace, error) {
	var tr domain.Trace
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &tr); err != nil {
			return nil, fmt.Errorf("failed to decode trace: %w", err)
		}
		return &tr, nil
	}
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &tr, nil
}

func isTraceExt(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
