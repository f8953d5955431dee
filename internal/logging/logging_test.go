package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "wrapdeck.log")
	logger, err := New(path, false)
	require.NoError(t, err)
	logger.Info("deck opened")
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "deck opened")
	require.False(t, strings.Contains(string(data), "hidden"))
}

func TestNewVerboseIncludesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrapdeck.log")
	logger, err := New(path, true)
	require.NoError(t, err)
	logger.Debug("frame dropped")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "frame dropped")
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, err := New("", true)
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("nowhere")
}
