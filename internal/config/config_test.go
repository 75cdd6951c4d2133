package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("CATALOG_FILE", "")
	t.Setenv("CATALOG_BACKEND", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalogPath, cfg.CatalogPath)
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, zapcore.WarnLevel, cfg.LogLevel)
}

func TestLoadFromEnv_SQLiteDefaultPath(t *testing.T) {
	t.Setenv("CATALOG_FILE", "")
	t.Setenv("CATALOG_BACKEND", "sqlite")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultSQLitePath, cfg.CatalogPath)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "library.json", DefaultPath(BackendJSON))
	assert.Equal(t, "library.json", DefaultPath(""))
	assert.Equal(t, "library.db", DefaultPath(BackendSQLite))
}

func TestLoadFromEnv_Values(t *testing.T) {
	t.Setenv("CATALOG_FILE", "/tmp/books.db")
	t.Setenv("CATALOG_BACKEND", "SQLite")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/books.db", cfg.CatalogPath)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "postgres")
	_, err := LoadFromEnv()
	assert.Error(t, err)

	t.Setenv("CATALOG_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = LoadFromEnv()
	assert.Error(t, err)
}
