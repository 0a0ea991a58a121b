package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/reorder/internal/adapters/file"
	"github.com/aretw0/reorder/internal/adapters/memory"
	redisstore "github.com/aretw0/reorder/internal/adapters/redis"
	"github.com/aretw0/reorder/internal/config"
	"github.com/aretw0/reorder/internal/logging"
	redislock "github.com/aretw0/reorder/pkg/adapters/redis"
	"github.com/aretw0/reorder/pkg/persistence/middleware"
	"github.com/aretw0/reorder/pkg/ports"
)

// Backend bundles the trace store with a locker that matches it.
type Backend struct {
	Store  ports.TraceStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases backend connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// EnvEncryptionKey supplies store.encryption_key when the config leaves it empty.
const EnvEncryptionKey = "REORDER_ENCRYPTION_KEY"

// OpenBackend builds the store selected by cfg and wraps it with the
// configured redaction and encryption. A redis backend is pinged before it
// is returned.
func OpenBackend(ctx context.Context, cfg config.Store) (*Backend, error) {
	b, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mws, err := storeMiddleware(cfg)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	b.Store = middleware.Wrap(b.Store, mws...)
	return b, nil
}

func storeMiddleware(cfg config.Store) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		mw, err := middleware.NewRedactionMiddleware(cfg.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}

	key := cfg.EncryptionKey
	if key == "" {
		key = os.Getenv(EnvEncryptionKey)
	}
	if key == "" {
		return mws, nil
	}
	active, err := decodeKey(key)
	if err != nil {
		return nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active, AllowPlaintext: cfg.AllowPlaintext}
	for i, k := range cfg.FallbackKeys {
		fallback, err := decodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, fallback)
	}
	mw, err := middleware.NewEncryptionMiddleware(enc)
	if err != nil {
		return nil, err
	}
	return append(mws, mw), nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("key is not base64: %w", err)
	}
	return key, nil
}

func openStore(ctx context.Context, cfg config.Store) (*Backend, error) {
	switch cfg.Kind {
	case "memory":
		return &Backend{Store: memory.New(), Locker: memory.NewLocker()}, nil
	case "file", "":
		return &Backend{Store: file.New(cfg.Dir), Locker: memory.NewLocker()}, nil
	case "redis":
		var opts []redisstore.Option
		if cfg.RedisPrefix != "" {
			opts = append(opts, redisstore.WithPrefix(cfg.RedisPrefix))
		}
		store := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		prefix := cfg.RedisPrefix
		if prefix == "" {
			prefix = redisstore.DefaultPrefix
		}
		return &Backend{
			Store:  store,
			Locker: redislock.NewLocker(store.Client(), prefix),
			close:  store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

// NewLogger builds the process logger. debug forces the debug level.
func NewLogger(w io.Writer, cfg config.Log, debug bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if cfg.Level != "" {
		var err error
		if level, err = logging.ParseLevel(cfg.Level); err != nil {
			return nil, err
		}
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithFormat(w, level, cfg.Format), nil
}
