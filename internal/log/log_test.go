package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/rsilveira/licoes/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept", "kind", "licoes")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kept", entry["msg"])
	require.Equal(t, "licoes", entry["kind"])
}

func TestSetupLoggerCreatesFileAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "licoes.log")

	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Debug("hello")
	require.FileExists(t, path)
}

func TestExpandHomeLeavesAbsolutePaths(t *testing.T) {
	path, err := expandHome("/var/log/licoes.log")
	require.NoError(t, err)
	require.Equal(t, "/var/log/licoes.log", path)
}
