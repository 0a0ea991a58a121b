package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/reorder/internal/adapters/memory"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dragYAML = `name: drag c to the top
layout:
  viewport_height: 1000
items:
  - {id: a, height: 50}
  - {id: b, height: 50}
  - {id: c, height: 50}
events:
  - {kind: down, at_ms: 0, x: 10, y: 125}
  - {kind: move, at_ms: 400, x: 10, y: 50}
  - {kind: up, at_ms: 450, x: 10, y: 50}
`

func writeTrace(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReplay_FileToJSON(t *testing.T) {
	path := writeTrace(t, "drag.yaml", dragYAML)

	var buf bytes.Buffer
	res, err := Replay(context.Background(), runner.New(), nil, &buf, ReplayOptions{Source: path, JSON: true})
	require.NoError(t, err)
	assert.Equal(t, runner.OutcomeReorder, res.Outcome)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "reorder", decoded["outcome"])
	assert.Equal(t, []any{"c", "a", "b"}, decoded["order"])
}

func TestReplay_PlainTextWhenNotTerminal(t *testing.T) {
	path := writeTrace(t, "drag.yaml", dragYAML)

	var buf bytes.Buffer
	_, err := Replay(context.Background(), runner.New(), nil, &buf, ReplayOptions{Source: path})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "**Outcome:** reorder")
	assert.False(t, IsTerminal(&buf))
}

func TestReplay_Mermaid(t *testing.T) {
	path := writeTrace(t, "drag.yaml", dragYAML)

	var buf bytes.Buffer
	_, err := Replay(context.Background(), runner.New(), nil, &buf, ReplayOptions{Source: path, Mermaid: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "graph TD")
	assert.Contains(t, buf.String(), "class drop current;")
}

func TestReplay_StoredID(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	id, err := ImportTrace(ctx, store, writeTrace(t, "drag.yaml", dragYAML))
	require.NoError(t, err)
	assert.Equal(t, "drag", id, "the file name names an ID-less trace")

	var buf bytes.Buffer
	res, err := Replay(ctx, runner.New(), store, &buf, ReplayOptions{Source: "drag", JSON: true})
	require.NoError(t, err)
	assert.Equal(t, "drag", res.TraceID)

	_, err = Replay(ctx, runner.New(), store, &buf, ReplayOptions{Source: "missing"})
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	_, err = Replay(ctx, runner.New(), nil, &buf, ReplayOptions{Source: "missing"})
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
}

func TestImportTrace_Rejects(t *testing.T) {
	store := memory.New()
	_, err := ImportTrace(context.Background(), store, writeTrace(t, "empty.yaml", "layout: {viewport_height: 100}\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidTrace)

	_, err = ImportTrace(context.Background(), store, filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDeleteTrace(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := ImportTrace(ctx, store, writeTrace(t, "drag.yaml", dragYAML))
	require.NoError(t, err)

	require.NoError(t, DeleteTrace(ctx, store, "drag"))
	assert.ErrorIs(t, DeleteTrace(ctx, store, "drag"), domain.ErrTraceNotFound)
}
