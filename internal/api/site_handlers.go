package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/heritageatlas/heritage-server/internal/domain"
	"github.com/heritageatlas/heritage-server/internal/query"
)

func (s *Server) registerSiteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAllSites",
		Method:      http.MethodGet,
		Path:        "/sites/all",
		Summary:     "List all sites",
		Description: "Returns the full dataset as a paginated listing",
		Tags:        []string{"Sites"},
	}, s.handleListAllSites)

	huma.Register(s.api, huma.Operation{
		OperationID: "filterSites",
		Method:      http.MethodGet,
		Path:        "/sites/filter",
		Summary:     "Filter sites",
		Description: "Returns a paginated list of sites matching the given filters",
		Tags:        []string{"Sites"},
	}, s.handleFilterSites)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchSites",
		Method:      http.MethodGet,
		Path:        "/sites/search",
		Summary:     "Search sites",
		Description: "Full-text substring search over name, description, and justification",
		Tags:        []string{"Sites"},
	}, s.handleSearchSites)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSitesInDanger",
		Method:      http.MethodGet,
		Path:        "/sites/sites-in-danger",
		Summary:     "List sites in danger",
		Description: "Returns sites currently on the danger list",
		Tags:        []string{"Sites"},
	}, s.handleListSitesInDanger)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTransboundarySites",
		Method:      http.MethodGet,
		Path:        "/sites/sites-transboundary",
		Summary:     "List transboundary sites",
		Description: "Returns sites spanning more than one country",
		Tags:        []string{"Sites"},
	}, s.handleListTransboundarySites)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSitesByCountry",
		Method:      http.MethodGet,
		Path:        "/sites/sites-by-country/{country}",
		Summary:     "List sites by country",
		Description: "Returns sites in the given country (case-insensitive exact match)",
		Tags:        []string{"Sites"},
	}, s.handleListSitesByCountry)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSitesByCriterion",
		Method:      http.MethodGet,
		Path:        "/sites/sites-by-criteria/{criterion}",
		Summary:     "List sites by criterion",
		Description: "Returns sites inscribed under the given criterion code",
		Tags:        []string{"Sites"},
	}, s.handleListSitesByCriterion)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSitesByYear",
		Method:      http.MethodGet,
		Path:        "/sites/sites-by-year/{year}",
		Summary:     "List sites by inscription year",
		Description: "Returns sites inscribed in the given year",
		Tags:        []string{"Sites"},
	}, s.handleListSitesByYear)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSite",
		Method:      http.MethodGet,
		Path:        "/sites/detail/{site_id}",
		Summary:     "Get site",
		Description: "Returns a single site by ID",
		Tags:        []string{"Sites"},
	}, s.handleGetSite)
}

// === DTOs ===

// SiteFilterParams carries the combinable filter query parameters.
// Values stay raw strings so bad input yields our 400 validation error
// with field detail instead of a schema error.
type SiteFilterParams struct {
	Country       string `query:"country" doc:"Country name, case-insensitive exact match"`
	Region        string `query:"region" doc:"Region name, case-insensitive exact match"`
	Category      string `query:"category" doc:"Cultural, Natural, or Mixed"`
	Danger        string `query:"danger" doc:"true or false"`
	Transboundary string `query:"transboundary" doc:"true or false"`
	YearFrom      string `query:"year_from" doc:"Earliest inscription year, inclusive"`
	YearTo        string `query:"year_to" doc:"Latest inscription year, inclusive"`
	Search        string `query:"search" doc:"Substring over name, description, justification"`
	Criteria      string `query:"criteria" doc:"Comma-separated criterion codes, any-of"`
}

func (p SiteFilterParams) raw() query.RawFilters {
	return query.RawFilters{
		Country:       p.Country,
		Region:        p.Region,
		Category:      p.Category,
		Danger:        p.Danger,
		Transboundary: p.Transboundary,
		YearFrom:      p.YearFrom,
		YearTo:        p.YearTo,
		Search:        p.Search,
		Criteria:      p.Criteria,
	}
}

// PaginationParams carries the raw page/per_page query parameters.
type PaginationParams struct {
	Page    string `query:"page" doc:"1-based page number (default 1)"`
	PerPage string `query:"per_page" doc:"Page size (default 100, capped at 500)"`
}

// PaginatedSites is one page of sites with pagination metadata.
type PaginatedSites struct {
	Items      []*domain.Site `json:"items"`
	TotalCount int            `json:"total_count" doc:"Matches before pagination"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

func toPaginatedSites(r query.Result) PaginatedSites {
	return PaginatedSites{
		Items:      r.Items,
		TotalCount: r.TotalCount,
		Page:       r.Page,
		PerPage:    r.PerPage,
		TotalPages: r.TotalPages,
	}
}

type ListSitesInput struct {
	SiteFilterParams
	PaginationParams
}

type ListSitesOutput struct {
	Body PaginatedSites
}

type GetSiteInput struct {
	ID string `path:"site_id" doc:"Site ID"`
}

type GetSiteOutput struct {
	Body *domain.Site
}

type SearchSitesInput struct {
	Q string `query:"q" doc:"Search term"`
	PaginationParams
}

// === Handlers ===

func (s *Server) handleFilterSites(ctx context.Context, input *ListSitesInput) (*ListSitesOutput, error) {
	result, err := s.services.Site.List(ctx, input.raw(), input.Page, input.PerPage)
	if err != nil {
		return nil, err
	}
	return &ListSitesOutput{Body: toPaginatedSites(result)}, nil
}

func (s *Server) handleGetSite(ctx context.Context, input *GetSiteInput) (*GetSiteOutput, error) {
	site, err := s.services.Site.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetSiteOutput{Body: site}, nil
}

func (s *Server) handleSearchSites(ctx context.Context, input *SearchSitesInput) (*ListSitesOutput, error) {
	result, err := s.services.Site.Search(ctx, input.Q, input.Page, input.PerPage)
	if err != nil {
		return nil, err
	}
	return &ListSitesOutput{Body: toPaginatedSites(result)}, nil
}

// PaginatedListInput is shared by the listings that take no filters of
// their own.
type PaginatedListInput struct {
	PaginationParams
}

func (s *Server) handleListAllSites(ctx context.Context, input *PaginatedListInput) (*ListSitesOutput, error) {
	result, err := s.services.Site.List(ctx, query.RawFilters{}, input.Page, input.PerPage)
	if err != nil {
		return nil, err
	}
	return &ListSitesOutput{Body: toPaginatedSites(result)}, nil
}

func (s *Server) handleListSitesInDanger(ctx context.Context, input *PaginatedListInput) (*ListSitesOutput, error) {
	result, err := s.services.Site.List(ctx, query.RawFilters{Danger: "true"}, input.Page, input.PerPage)
	if err != nil {
		return nil, err
	}
	return &ListSitesOutput{Body: toPaginatedSites(result)}, nil
}

func (s *Server) handleListTransboundarySites(ctx context.Context, input *PaginatedListInput) (*ListSitesOutput, error) {
	result, err := s.services.Site.List(ctx, query.RawFilters{Transboundary: "true"}, input.Page, input.PerPage)
	if err != nil {
		return nil, err
	}
	return &ListSitesOutput{Body: toPaginatedSites(result)}, nil
}

type ListSitesByCountryInput struct {
	Country string `path:"country" doc:"Country name"`
	PaginationParams
}

func (s *Server) handleListSitesByCountry(ctx context.Context, input *ListSitesByCountryInput) (*ListSitesOutput, error) {
	result, err := s.services.Site.List(ctx, query.RawFilters{Country: input.Country}, input.Page, input.PerPage)
	if err != nil {
		return nil, err
	}
	return &ListSitesOutput{Body: toPaginatedSites(result)}, nil
}

type ListSitesByCriterionInput struct {
	Code string `path:"criterion" doc:"Criterion code (c1..c6, n7..n10)"`
	PaginationParams
}

func (s *Server) handleListSitesByCriterion(ctx context.Context, input *ListSitesByCriterionInput) (*ListSitesOutput, error) {
	result, err := s.services.Site.List(ctx, query.RawFilters{Criteria: input.Code}, input.Page, input.PerPage)
	if err != nil {
		return nil, err
	}
	return &ListSitesOutput{Body: toPaginatedSites(result)}, nil
}

type ListSitesByYearInput struct {
	Year string `path:"year" doc:"Inscription year"`
	PaginationParams
}

func (s *Server) handleListSitesByYear(ctx context.Context, input *ListSitesByYearInput) (*ListSitesOutput, error) {
	raw := query.RawFilters{YearFrom: input.Year, YearTo: input.Year}
	result, err := s.services.Site.List(ctx, raw, input.Page, input.PerPage)
	if err != nil {
		return nil, err
	}
	return &ListSitesOutput{Body: toPaginatedSites(result)}, nil
}
