package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/reorder/internal/adapters/file"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.TraceStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunTraceStoreContract(t, file.New(t.TempDir()))
}

const yamlTrace = `
name: hand written
layout:
  viewport_height: 600
items:
  - id: milk
    height: 40
  - id: eggs
    height: 40
    margin_top: 8
listeners:
  prevent_tap: true
events:
  - kind: down
    item: milk
    y: 20
  - kind: up
    at_ms: 80
`

func TestFileStore_LoadsYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groceries.yaml"), []byte(yamlTrace), 0644))
	store := file.New(dir)
	ctx := context.Background()

	tr, err := store.Load(ctx, "groceries")
	require.NoError(t, err)
	assert.Equal(t, "groceries", tr.ID, "id defaults to the file name")
	assert.Equal(t, "hand written", tr.Name)
	assert.Equal(t, 600.0, tr.Layout.ViewportHeight)
	require.Len(t, tr.Items, 2)
	assert.Equal(t, 8.0, tr.Items[1].MarginTop)
	assert.True(t, tr.Listeners.PreventTap)
	require.Len(t, tr.Events, 2)
	assert.Equal(t, int64(80), tr.Events[1].AtMS)
	assert.NoError(t, tr.Validate())

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"groceries"}, ids)

	require.NoError(t, store.Save(ctx, tr))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"groceries"}, ids)
	_, err = os.Stat(filepath.Join(dir, "groceries.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	_, err := store.Load(ctx, "../secrets")
	assert.ErrorIs(t, err, domain.ErrInvalidTrace)
	assert.ErrorIs(t, store.Save(ctx, &domain.Trace{ID: "a/b"}), domain.ErrInvalidTrace)
	assert.ErrorIs(t, store.Delete(ctx, ".hidden"), domain.ErrInvalidTrace)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	ids, err := file.New(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestReadTraceFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"j","layout":{"viewport_height":100},"items":[{"id":"a","height":10}],"events":[{"kind":"down","item":"a"}]}`), 0644))

	tr, err := file.ReadTraceFile(path)
	require.NoError(t, err)
	assert.Equal(t, "j", tr.ID)
	assert.Equal(t, domain.TraceDown, tr.Events[0].Kind)

	_, err = file.DecodeTrace([]byte("{"), ".json")
	assert.Error(t, err)
}
