package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/heritageatlas/heritage-server/internal/service"
)

// ProvideSiteService provides the site listing and search service.
func ProvideSiteService(i do.Injector) (*service.SiteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)
	return service.NewSiteService(storeHandle.Store, log), nil
}

// ProvideReferenceService provides the reference list service.
func ProvideReferenceService(i do.Injector) (*service.ReferenceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)
	return service.NewReferenceService(storeHandle.Store, log), nil
}

// ProvideStatsService provides the statistics service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)
	return service.NewStatsService(storeHandle.Store, log), nil
}

// ProvideIngestService provides the dataset ingestion service.
func ProvideIngestService(i do.Injector) (*service.IngestService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)
	return service.NewIngestService(storeHandle.Store, log), nil
}
