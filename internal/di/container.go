// Package di provides dependency injection configuration for the Heritage Atlas server.
package di

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/heritageatlas/heritage-server/internal/config"
	"github.com/heritageatlas/heritage-server/internal/di/providers"
	"github.com/heritageatlas/heritage-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideSiteService)
	do.Provide(injector, providers.ProvideReferenceService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideIngestService)

	// Workers
	do.Provide(injector, providers.ProvideDropFolderWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*slog.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*service.SiteService](injector)
	_ = do.MustInvoke[*service.ReferenceService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)
	_ = do.MustInvoke[*service.IngestService](injector)

	_ = do.MustInvoke[*providers.WatcherHandle](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
