package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports server and dataset health",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// HealthResponse reports server and dataset status.
type HealthResponse struct {
	Status    string `json:"status"`
	SiteCount int    `json:"site_count"`
	Revision  string `json:"revision,omitempty"`
}

type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check failed", "error", err)
		return nil, huma.Error500InternalServerError("database unreachable")
	}

	snapshot := s.store.Snapshot()
	resp := HealthResponse{
		Status:    "ok",
		SiteCount: snapshot.Len(),
	}
	if rev := snapshot.Revision(); rev != nil {
		resp.Revision = rev.ID
	}
	return &HealthOutput{Body: resp}, nil
}
