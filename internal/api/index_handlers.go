package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerIndexRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getIndex",
		Method:      http.MethodGet,
		Path:        "/sites",
		Summary:     "API index",
		Description: "Lists the available endpoints",
		Tags:        []string{"Index"},
	}, s.handleGetIndex)
}

type IndexOutput struct {
	Body struct {
		Name      string            `json:"name"`
		Endpoints map[string]string `json:"endpoints"`
	}
}

func (s *Server) handleGetIndex(_ context.Context, _ *struct{}) (*IndexOutput, error) {
	out := &IndexOutput{}
	out.Body.Name = "Heritage Atlas API"
	out.Body.Endpoints = map[string]string{
		"all":              "/sites/all",
		"filter":           "/sites/filter",
		"detail":           "/sites/detail/{site_id}",
		"search":           "/sites/search?q=",
		"in_danger":        "/sites/sites-in-danger",
		"transboundary":    "/sites/sites-transboundary",
		"by_country":       "/sites/sites-by-country/{country}",
		"by_criteria":      "/sites/sites-by-criteria/{criterion}",
		"by_year":          "/sites/sites-by-year/{year}",
		"countries":        "/sites/countries",
		"regions":          "/sites/regions",
		"categories":       "/sites/categories",
		"criteria":         "/sites/criteria",
		"stats":            "/sites/stats",
		"geo":              "/sites/geo",
		"upload":           "/sites/upload-xls",
		"health":           "/health",
		"openapi_document": "/openapi.json",
		"docs":             "/docs",
	}
	return out, nil
}
