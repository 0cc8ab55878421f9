// Package service contains the business logic services behind the API
// handlers. Services read from the store's dataset snapshot and return
// domain errors; transport concerns stay in the api package.
package service

import (
	"context"
	"log/slog"

	"github.com/heritageatlas/heritage-server/internal/domain"
	apperrors "github.com/heritageatlas/heritage-server/internal/errors"
	"github.com/heritageatlas/heritage-server/internal/geo"
	"github.com/heritageatlas/heritage-server/internal/query"
	"github.com/heritageatlas/heritage-server/internal/store"
)

// SiteService serves site listing, filtering, search, and map export.
type SiteService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSiteService creates a new site service.
func NewSiteService(store *store.Store, logger *slog.Logger) *SiteService {
	return &SiteService{store: store, logger: logger}
}

// List returns one page of sites matching the given filters. All
// parameters arrive raw; unparseable values produce a validation error.
func (s *SiteService) List(_ context.Context, raw query.RawFilters, rawPage, rawPerPage string) (query.Result, error) {
	filters, err := query.ParseFilters(raw)
	if err != nil {
		return query.Result{}, err
	}
	page, err := query.ParsePageParams(rawPage, rawPerPage)
	if err != nil {
		return query.Result{}, err
	}
	return query.Run(s.store.Snapshot().Sites(), filters.Match, page), nil
}

// Get returns a single site by ID.
func (s *SiteService) Get(_ context.Context, id string) (*domain.Site, error) {
	site, ok := s.store.Snapshot().ByID(id)
	if !ok {
		return nil, apperrors.NotFoundf("site %q not found", id)
	}
	return site, nil
}

// Search returns one page of sites whose name, description, or
// justification contains the term, case-insensitively. An empty term is
// unconstrained and matches every site.
func (s *SiteService) Search(ctx context.Context, term, rawPage, rawPerPage string) (query.Result, error) {
	return s.List(ctx, query.RawFilters{Search: term}, rawPage, rawPerPage)
}

// GeoJSON exports every site matching the filters as a GeoJSON
// FeatureCollection. Sites without usable geometry are skipped.
func (s *SiteService) GeoJSON(_ context.Context, raw query.RawFilters) (*geo.FeatureCollection, error) {
	filters, err := query.ParseFilters(raw)
	if err != nil {
		return nil, err
	}

	matched := query.Filter(s.store.Snapshot().Sites(), filters.Match)

	var features []geo.Feature
	for _, site := range matched {
		if !site.Geometry.Valid() {
			continue
		}
		features = append(features, geo.NewFeature(site.Geometry, map[string]any{
			"id":             site.ID,
			"name":           site.Name,
			"description":    site.Description,
			"justification":  site.Justification,
			"category":       site.Category,
			"country":        site.Country,
			"region":         site.Region,
			"danger":         site.Danger,
			"transboundary":  site.Transboundary,
			"year_inscribed": site.YearInscribed,
			"criteria":       site.Criteria,
			"area_hectares":  site.AreaHectares,
		}))
	}

	return geo.NewFeatureCollection(features), nil
}
