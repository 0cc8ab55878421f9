package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/heritageatlas/heritage-server/internal/domain"
	"github.com/heritageatlas/heritage-server/internal/store"
)

// StatsService computes dataset-wide aggregate statistics.
type StatsService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(store *store.Store, logger *slog.Logger) *StatsService {
	return &StatsService{store: store, logger: logger}
}

// Statistics aggregates the current snapshot in one pass.
func (s *StatsService) Statistics(_ context.Context) *domain.Statistics {
	snapshot := s.store.Snapshot()

	stats := &domain.Statistics{
		TotalSites:      snapshot.Len(),
		SitesByCategory: map[string]int{},
		SitesByRegion:   map[string]int{},
		CriteriaCounts:  map[string]int{},
		SitesByDecade:   map[string]int{},
	}

	for _, site := range snapshot.Sites() {
		stats.SitesByCategory[string(site.Category)]++
		if site.Region != "" {
			stats.SitesByRegion[site.Region]++
		}
		if site.Danger {
			stats.SitesInDanger++
		}
		if site.Transboundary {
			stats.TransboundarySites++
		}
		for _, c := range site.Criteria {
			stats.CriteriaCounts[string(c)]++
		}
		stats.SitesByDecade[decadeKey(site.Decade())]++
	}

	return stats
}

// Revision returns the revision that produced the current dataset, or nil
// before the first ingestion.
func (s *StatsService) Revision(_ context.Context) *domain.Revision {
	return s.store.Snapshot().Revision()
}

// decadeKey renders a decade bucket as "1970s".
func decadeKey(decade int) string {
	return strconv.Itoa(decade) + "s"
}
