package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/reorder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := write(t, "reorder.yaml", `
engine:
  hold_delay: 450ms
  leave_grace: 1s
  autoscroll_zone: "60"
  dragging_class: lifted
log:
  level: debug
store:
  kind: redis
  redis_addr: localhost:6379
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 450*time.Millisecond, cfg.Engine.HoldDelay)
	assert.Equal(t, time.Second, cfg.Engine.LeaveGrace)
	assert.Equal(t, 60.0, cfg.Engine.AutoscrollZone, "weak typing accepts numeric strings")
	assert.Equal(t, "lifted", cfg.Engine.DraggingClassName)
	assert.Equal(t, 100*time.Millisecond, cfg.Engine.SampleInterval, "untouched keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "redis", cfg.Store.Kind)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "reorder.json", `{"server":{"addr":":9090"},"engine":{"raised":false}}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.False(t, cfg.Engine.Raised)
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load("nope.yaml")
	assert.Error(t, err)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":     "engine:\n  hold_dleay: 1s\n",
		"bad duration":    "engine:\n  hold_delay: soon\n",
		"zero hold":       "engine:\n  hold_delay: 0s\n",
		"unknown store":   "store:\n  kind: s3\n",
		"redis sans addr": "store:\n  kind: redis\n",
		"broken yaml":     "engine: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(write(t, "c.yaml", body))
			assert.Error(t, err)
		})
	}
}
