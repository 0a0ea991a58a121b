package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/reorder/internal/adapters/file"
	"github.com/aretw0/reorder/internal/adapters/memory"
	redisstore "github.com/aretw0/reorder/internal/adapters/redis"
	"github.com/aretw0/reorder/internal/config"
	redislock "github.com/aretw0/reorder/pkg/adapters/redis"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		b, err := OpenBackend(ctx, config.Store{Kind: "memory"})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, b.Store)
		assert.IsType(t, &memory.Locker{}, b.Locker)
		assert.NoError(t, b.Close())
	})

	t.Run("file", func(t *testing.T) {
		b, err := OpenBackend(ctx, config.Store{Kind: "file", Dir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &file.Store{}, b.Store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		b, err := OpenBackend(ctx, config.Store{Kind: "redis", RedisAddr: mr.Addr(), RedisPrefix: "t:"})
		require.NoError(t, err)
		defer b.Close()
		assert.IsType(t, &redisstore.Store{}, b.Store)
		assert.IsType(t, &redislock.Locker{}, b.Locker)

		unlock, err := b.Locker.Lock(ctx, "k", time.Second)
		require.NoError(t, err)
		assert.True(t, mr.Exists("t:lock:k"))
		require.NoError(t, unlock(ctx))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, err := OpenBackend(ctx, config.Store{Kind: "redis", RedisAddr: addr})
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenBackend(ctx, config.Store{Kind: "s3"})
		assert.ErrorContains(t, err, "s3")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, config.Log{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	logger, err = NewLogger(&buf, config.Log{Level: "warn"}, true)
	require.NoError(t, err)
	logger.Debug("forced")
	assert.Contains(t, buf.String(), "forced")

	_, err = NewLogger(&buf, config.Log{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestOpenBackend_Middleware(t *testing.T) {
	ctx := context.Background()
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	dir := t.TempDir()

	b, err := OpenBackend(ctx, config.Store{Kind: "file", Dir: dir, EncryptionKey: key, Redact: []string{"@"}})
	require.NoError(t, err)
	tr := &domain.Trace{
		ID:     "sealed",
		Layout: domain.Layout{ViewportHeight: 100},
		Items:  []domain.ItemSpec{{ID: "me@example.com", Height: 10}},
	}
	require.NoError(t, b.Store.Save(ctx, tr))

	raw, err := file.New(dir).Load(ctx, "sealed")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed)

	loaded, err := b.Store.Load(ctx, "sealed")
	require.NoError(t, err)
	assert.Equal(t, "redacted-0", loaded.Items[0].ID)

	t.Setenv(EnvEncryptionKey, "not base64!")
	_, err = OpenBackend(ctx, config.Store{Kind: "memory"})
	assert.ErrorContains(t, err, "encryption_key")

	_, err = OpenBackend(ctx, config.Store{Kind: "memory", EncryptionKey: base64.StdEncoding.EncodeToString([]byte("short"))})
	assert.Error(t, err)
}
