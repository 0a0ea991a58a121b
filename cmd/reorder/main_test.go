package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dragJSON = `{
  "id": "drag",
  "layout": {"viewport_height": 1000},
  "items": [{"id": "a", "height": 50}, {"id": "b", "height": 50}, {"id": "c", "height": 50}],
  "events": [
    {"kind": "down", "at_ms": 0, "x": 10, "y": 125},
    {"kind": "move", "at_ms": 400, "x": 10, "y": 50},
    {"kind": "up", "at_ms": 450, "x": 10, "y": 50}
  ]
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("drag.json", []byte(dragJSON), 0o644))
	require.NoError(t, os.WriteFile("reorder.yaml", []byte("log:\n  level: error\nstore:\n  kind: file\n  dir: traces\n"), 0o644))

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reorder version")

	out, err = execute(t, "splice", "--positions=-100,-50,50,100", "--dy=-60")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = execute(t, "graph")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")

	out, err = execute(t, "replay", "drag.json", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"outcome":"reorder"`)

	out, err = execute(t, "traces", "import", "drag.json")
	require.NoError(t, err)
	assert.Contains(t, out, "as drag")
	assert.FileExists(t, filepath.Join("traces", "drag.json"))

	out, err = execute(t, "traces", "list")
	require.NoError(t, err)
	assert.Equal(t, "drag\n", out)

	out, err = execute(t, "traces", "show", "drag")
	require.NoError(t, err)
	assert.Contains(t, out, "viewport_height: 1000")

	require.NoError(t, os.Remove("drag.json"))
	out, err = execute(t, "replay", "drag", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "**Outcome:** reorder")

	_, err = execute(t, "traces", "delete", "drag")
	require.NoError(t, err)
	_, err = execute(t, "traces", "delete", "drag")
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("reorder.yaml", []byte("store:\n  kind: tape\n"), 0o644))

	_, err := execute(t, "version")
	assert.Error(t, err)
}
