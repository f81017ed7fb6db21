package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadFileDefault(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.ApplicationConfiguration.LogLevel)
	assert.Equal(t, "inmemory", cfg.ApplicationConfiguration.DBConfiguration.Type)
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yml")
	require.NoError(t, os.WriteFile(p, []byte(`
ApplicationConfiguration:
  LogLevel: debug
  DBConfiguration:
    Type: boltdb
    BoltDBOptions:
      FilePath: /tmp/ledger.db
`), 0o600))

	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.ApplicationConfiguration.LogLevel)
	assert.Equal(t, "boltdb", cfg.ApplicationConfiguration.DBConfiguration.Type)
	assert.Equal(t, "/tmp/ledger.db", cfg.ApplicationConfiguration.DBConfiguration.BoltDBOptions.FilePath)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.Error(t, err)

	p := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(p, []byte("{]"), 0o600))
	_, err = LoadFile(p)
	require.Error(t, err)
}

func TestHandleLoggingParams(t *testing.T) {
	log, err := HandleLoggingParams(false, ApplicationConfiguration{LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = HandleLoggingParams(true, ApplicationConfiguration{})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = HandleLoggingParams(false, ApplicationConfiguration{LogLevel: "qwerty"})
	require.Error(t, err)
}
