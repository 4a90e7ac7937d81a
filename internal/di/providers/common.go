// Package providers contains the DI provider functions for the catalog.
package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/mediastash/mediastash-server/internal/config"
	"github.com/mediastash/mediastash-server/internal/logger"
	"github.com/mediastash/mediastash-server/internal/validation"
)

// ProvideConfig loads the application configuration from the environment.
func ProvideConfig(do.Injector) (*config.Config, error) {
	return config.Load(config.Options{})
}

// ProvideLogger creates the application logger from the configuration.
func ProvideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return logger.New(logger.Config{
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	}), nil
}

// ProvideValidator creates the shared input validator.
func ProvideValidator(do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
