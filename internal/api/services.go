package api

import (
	"github.com/heritageatlas/heritage-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Site      *service.SiteService
	Reference *service.ReferenceService
	Stats     *service.StatsService
	Ingest    *service.IngestService
}
