package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/codementor/internal/config"
)

func TestNewWithoutFileIsNop(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "info"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(0), "nop logger should not enable info")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mentor.log")

	logger, err := New(config.LoggingConfig{Level: "warn", File: path}, false)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, "visible"))
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentor.log")

	logger, err := New(config.LoggingConfig{Level: "error", File: path}, true)
	require.NoError(t, err)

	logger.Debug("debug line")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug line")
}
