package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Storage.Backend, cfg.Storage.Backend)
	assert.Equal(t, "timers", cfg.Storage.Key)

	d, err := cfg.TickInterval()
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
storage:
  backend: sqlite
  path: /tmp/t.sqlite
tick:
  interval: 250ms
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/t.sqlite", cfg.Storage.Path)
	assert.Equal(t, "timers", cfg.Storage.Key, "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)

	d, err := cfg.TickInterval()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TIMERS_STORAGE", "redis")
	t.Setenv("TIMERS_REDIS_ADDR", "redis:6380")
	t.Setenv("TIMERS_REDIS_DB", "3")
	t.Setenv("TIMERS_KEY", "work")
	t.Setenv("TIMERS_TICK", "2s")
	t.Setenv("TIMERS_LOG_FILE", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "redis:6380", cfg.Storage.RedisAddr)
	assert.Equal(t, 3, cfg.Storage.RedisDB)
	assert.Equal(t, "work", cfg.Storage.Key)
	assert.Equal(t, "2s", cfg.Tick.Interval)
	assert.Empty(t, cfg.Logging.File)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"backend.yaml":  "storage:\n  backend: etcd\n",
		"tick.yaml":     "tick:\n  interval: soon\n",
		"negative.yaml": "tick:\n  interval: -1s\n",
		"syntax.yaml":   "storage: [\n",
	}

	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Storage.Backend = "memory"
	cfg.Tick.Interval = "500ms"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", loaded.Storage.Backend)
	assert.Equal(t, "500ms", loaded.Tick.Interval)
}
