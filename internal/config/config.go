// Package config provides application configuration with support for
// environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Database DatabaseConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DatabaseConfig holds storage configuration.
type DatabaseConfig struct {
	// Path is the SQLite database file. The containing directory is
	// created on load if missing.
	Path string
}

// Options are explicit overrides, typically bound to command-line flags by
// the caller. Empty fields fall through to environment variables, then the
// .env file, then defaults.
type Options struct {
	Environment  string
	LogLevel     string
	DatabasePath string
	EnvFile      string
}

// Load builds the configuration with precedence:
// 1. Explicit options (highest).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest).
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Environment: pick(opts.Environment, "MEDIASTASH_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: pick(opts.LogLevel, "MEDIASTASH_LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Path: pick(opts.DatabasePath, "MEDIASTASH_DB_PATH", defaultDatabasePath()),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment %q", c.App.Environment)
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logger.Level)
	}

	if c.Database.Path == "" {
		return errors.New("database path must not be empty")
	}

	return nil
}

// pick returns the first non-empty value of: explicit override, environment
// variable, default.
func pick(override, envKey, fallback string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mediastash.db"
	}
	return filepath.Join(home, ".mediastash", "main.db")
}

// loadEnvFile reads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open env file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}
