package config

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Backend names
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	DefaultCatalogPath = "library.json"
	DefaultSQLitePath  = "library.db"
	DefaultLogLevel    = "warn"
)

// DefaultPath returns the catalog location used when none is configured
func DefaultPath(backend string) string {
	if backend == BackendSQLite {
		return DefaultSQLitePath
	}
	return DefaultCatalogPath
}

// Config holds the application configuration
type Config struct {
	// CatalogPath is where the catalog is persisted
	CatalogPath string

	// Backend selects the storage: json (default), sqlite or memory
	Backend string

	LogLevel zapcore.Level
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	backend, err := ParseBackend(os.Getenv("CATALOG_BACKEND"))
	if err != nil {
		return nil, err
	}
	config.Backend = backend

	config.CatalogPath = strings.TrimSpace(os.Getenv("CATALOG_FILE"))
	if config.CatalogPath == "" {
		config.CatalogPath = DefaultPath(backend)
	}

	level, err := ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	config.LogLevel = level

	return config, nil
}

// ParseBackend validates a backend name. Empty means json.
func ParseBackend(s string) (string, error) {
	switch b := strings.ToLower(strings.TrimSpace(s)); b {
	case "":
		return BackendJSON, nil
	case BackendJSON, BackendSQLite, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("invalid CATALOG_BACKEND %q (expected json, sqlite or memory)", s)
	}
}

// ParseLogLevel validates a log level name. Empty means warn.
func ParseLogLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = DefaultLogLevel
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return level, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return level, nil
}
