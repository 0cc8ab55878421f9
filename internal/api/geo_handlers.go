package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/heritageatlas/heritage-server/internal/geo"
)

func (s *Server) registerGeoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportGeoJSON",
		Method:      http.MethodGet,
		Path:        "/sites/geo",
		Summary:     "Export sites as GeoJSON",
		Description: "Returns matching sites as a GeoJSON FeatureCollection; sites without geometry are omitted",
		Tags:        []string{"Geo"},
	}, s.handleExportGeoJSON)
}

type ExportGeoJSONInput struct {
	SiteFilterParams
}

type ExportGeoJSONOutput struct {
	Body *geo.FeatureCollection
}

func (s *Server) handleExportGeoJSON(ctx context.Context, input *ExportGeoJSONInput) (*ExportGeoJSONOutput, error) {
	fc, err := s.services.Site.GeoJSON(ctx, input.raw())
	if err != nil {
		return nil, err
	}
	return &ExportGeoJSONOutput{Body: fc}, nil
}
