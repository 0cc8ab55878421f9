package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/heritageatlas/heritage-server/internal/domain"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/sites/stats",
		Summary:     "Get dataset statistics",
		Description: "Returns aggregate statistics over the current dataset",
		Tags:        []string{"Stats"},
	}, s.handleGetStats)
}

// StatsResponse is the statistics payload plus the revision that produced
// the dataset, when one exists.
type StatsResponse struct {
	*domain.Statistics
	Revision *domain.Revision `json:"revision,omitempty" doc:"Dataset revision, absent before first ingestion"`
}

type GetStatsOutput struct {
	Body StatsResponse
}

func (s *Server) handleGetStats(ctx context.Context, _ *struct{}) (*GetStatsOutput, error) {
	return &GetStatsOutput{Body: StatsResponse{
		Statistics: s.services.Stats.Statistics(ctx),
		Revision:   s.services.Stats.Revision(ctx),
	}}, nil
}
