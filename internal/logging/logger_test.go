package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "timers.log")

	logger, err := New(file, "info", false)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"visible"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewDebugOverridesLevel(t *testing.T) {
	file := filepath.Join(t.TempDir(), "timers.log")

	logger, err := New(file, "error", true)
	require.NoError(t, err)
	logger.Debug("debugging")
	_ = logger.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debugging")
}

func TestNewWithoutFileIsNop(t *testing.T) {
	logger, err := New("", "info", true)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	logger.Info("discarded")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "loud", false)
	assert.Error(t, err)
}
