// Package config loads the reorder CLI configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when --config is not given.
const DefaultPath = "reorder.yaml"

// File is the on-disk configuration.
type File struct {
	Engine domain.Config `mapstructure:"engine"`
	Log    Log           `mapstructure:"log"`
	Store  Store         `mapstructure:"store"`
	Server Server        `mapstructure:"server"`
}

// Log selects the logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Store selects the trace store backend.
type Store struct {
	// Kind is one of memory, file or redis.
	Kind          string `mapstructure:"kind"`
	Dir           string `mapstructure:"dir"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`

	// EncryptionKey is a base64 AES-256 key. Traces are sealed at rest when set.
	EncryptionKey string `mapstructure:"encryption_key"`
	// FallbackKeys still open traces sealed with retired keys.
	FallbackKeys   []string `mapstructure:"fallback_keys"`
	AllowPlaintext bool     `mapstructure:"allow_plaintext"`
	// Redact lists patterns; matching item IDs and trace names are masked on save.
	Redact []string `mapstructure:"redact"`
}

// Server configures the HTTP adapter.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Engine: domain.DefaultConfig(),
		Log:    Log{Level: "info", Format: "text"},
		Store:  Store{Kind: "file", Dir: filepath.Join(".reorder", "traces")},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads path (YAML or JSON) over the defaults. A missing file at
// DefaultPath yields the defaults; a missing explicit path is an error.
func Load(path string) (File, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, cfg.Validate()
}

// Decode maps loosely typed input onto out, accepting "300ms" style durations
// and numeric strings.
func Decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Validate rejects settings the engine cannot run with.
func (f File) Validate() error {
	e := f.Engine
	switch {
	case e.HoldDelay <= 0:
		return fmt.Errorf("engine.hold_delay must be positive")
	case e.SampleInterval <= 0:
		return fmt.Errorf("engine.sample_interval must be positive")
	case e.ScrollAbandonY <= 0:
		return fmt.Errorf("engine.scroll_abandon_y must be positive")
	case e.AutoscrollZone < 0:
		return fmt.Errorf("engine.autoscroll_zone must not be negative")
	}
	switch f.Store.Kind {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("unknown store kind %q", f.Store.Kind)
	}
	if f.Store.Kind == "redis" && f.Store.RedisAddr == "" {
		return fmt.Errorf("store.redis_addr is required for the redis store")
	}
	return nil
}
