// Package config holds the process configuration. It is built once at
// startup and passed to constructors; nothing reads the environment
// after that.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// Config is the explicit application configuration.
type Config struct {
	Addr     string
	DBPath   string
	Env      string
	LogLevel slog.Level
}

// FromEnv builds a Config from APP_-prefixed environment variables,
// falling back to local-development defaults. Command line flags may
// override individual fields afterwards.
func FromEnv() Config {
	return Config{
		Addr:     envOr("APP_ADDR", ":8080"),
		DBPath:   envOr("APP_SQLITE_PATH", "pantry.sqlite3"),
		Env:      envOr("APP_ENV", "local"),
		LogLevel: parseLevel(envOr("APP_LOG_LEVEL", "info")),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
