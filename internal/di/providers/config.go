// Package providers contains dependency injection providers for the Heritage Atlas server.
package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/heritageatlas/heritage-server/internal/config"
	"github.com/heritageatlas/heritage-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("starting Heritage Atlas server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"dataset_path", cfg.Dataset.Path,
	)

	return log, nil
}
