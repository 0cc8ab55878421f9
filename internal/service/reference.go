package service

import (
	"context"
	"log/slog"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/heritageatlas/heritage-server/internal/domain"
	"github.com/heritageatlas/heritage-server/internal/store"
)

// ReferenceService serves the distinct-value reference lists and the
// static criteria table.
type ReferenceService struct {
	store    *store.Store
	logger   *slog.Logger
	collator *collate.Collator
}

// NewReferenceService creates a new reference service.
func NewReferenceService(store *store.Store, logger *slog.Logger) *ReferenceService {
	return &ReferenceService{
		store:  store,
		logger: logger,
		// Collated sort keeps accented country names in human order
		// instead of byte order.
		collator: collate.New(language.English),
	}
}

// Countries returns the distinct country names in the dataset, sorted.
func (s *ReferenceService) Countries(_ context.Context) []string {
	return s.distinct(func(site *domain.Site) string { return site.Country })
}

// Regions returns the distinct region names in the dataset, sorted.
func (s *ReferenceService) Regions(_ context.Context) []string {
	return s.distinct(func(site *domain.Site) string { return site.Region })
}

// Categories returns the distinct categories in the dataset, sorted.
func (s *ReferenceService) Categories(_ context.Context) []string {
	return s.distinct(func(site *domain.Site) string { return string(site.Category) })
}

// Criteria returns the static criteria lookup table, split into cultural
// and natural codes. Independent of the loaded dataset.
func (s *ReferenceService) Criteria(_ context.Context) (cultural, natural []domain.CriterionInfo) {
	return domain.CriteriaInfo()
}

func (s *ReferenceService) distinct(key func(*domain.Site) string) []string {
	seen := map[string]bool{}
	values := []string{}
	for _, site := range s.store.Snapshot().Sites() {
		v := key(site)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	s.collator.SortStrings(values)
	return values
}
