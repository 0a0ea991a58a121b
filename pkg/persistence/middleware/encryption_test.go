package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/reorder/internal/adapters/memory"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/persistence/middleware"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sampleTrace(id string) *domain.Trace {
	return &domain.Trace{
		ID:     id,
		Name:   "alice@example.com reorders",
		Layout: domain.Layout{ViewportHeight: 500},
		Items:  []domain.ItemSpec{{ID: "alice@example.com", Height: 50}, {ID: "b", Height: 50}},
		Events: []domain.TraceEvent{
			{Kind: domain.TraceDown, Item: "alice@example.com", Y: 25},
			{Kind: domain.TraceUp, AtMS: 40, Y: 25},
		},
	}
}

func newEncrypted(t *testing.T, cfg middleware.EncryptionConfig, inner ports.TraceStore) ports.TraceStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(inner)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	store := newEncrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, inner)

	require.NoError(t, store.Save(ctx, sampleTrace("t1")))

	sealed, err := inner.Load(ctx, "t1")
	require.NoError(t, err)
	assert.NotEmpty(t, sealed.Sealed)
	assert.Empty(t, sealed.Items)
	assert.Empty(t, sealed.Name)
	assert.ErrorIs(t, sealed.Validate(), domain.ErrInvalidTrace)

	loaded, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, sampleTrace("t1"), loaded)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids)
	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Load(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	oldKey, newKey := generateKey(t), generateKey(t)

	oldStore := newEncrypted(t, middleware.EncryptionConfig{ActiveKey: oldKey}, inner)
	require.NoError(t, oldStore.Save(ctx, sampleTrace("t1")))

	newStore := newEncrypted(t, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}}, inner)
	loaded, err := newStore.Load(ctx, "t1")
	require.NoError(t, err, "the fallback key opens old traces")

	require.NoError(t, newStore.Save(ctx, loaded))
	_, err = oldStore.Load(ctx, "t1")
	assert.Error(t, err, "re-saved traces use the new key")
}

func TestEncryptionMiddleware_Plaintext(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	require.NoError(t, inner.Save(ctx, sampleTrace("plain")))
	key := generateKey(t)

	strict := newEncrypted(t, middleware.EncryptionConfig{ActiveKey: key}, inner)
	_, err := strict.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)

	lenient := newEncrypted(t, middleware.EncryptionConfig{ActiveKey: key, AllowPlaintext: true}, inner)
	loaded, err := lenient.Load(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", loaded.ID)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}
