package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/heritageatlas/heritage-server/internal/domain"
	apperrors "github.com/heritageatlas/heritage-server/internal/errors"
	"github.com/heritageatlas/heritage-server/internal/ingest"
	"github.com/heritageatlas/heritage-server/internal/store"
)

// IngestService replaces the dataset from uploaded spreadsheets.
type IngestService struct {
	store  *store.Store
	parser *ingest.Parser
	logger *slog.Logger
}

// NewIngestService creates a new ingest service.
func NewIngestService(store *store.Store, logger *slog.Logger) *IngestService {
	return &IngestService{
		store:  store,
		parser: ingest.NewParser(),
		logger: logger,
	}
}

// uploadErrorDetails is the details payload of an UNPROCESSABLE upload
// error.
type uploadErrorDetails struct {
	RowErrors []ingest.RowError `json:"row_errors"`
}

// ReplaceFromXLSX parses an XLSX workbook and, if every row is valid,
// replaces the whole dataset in one transaction. Any row failure leaves
// the current dataset untouched and returns an UNPROCESSABLE error whose
// details list every bad row.
func (s *IngestService) ReplaceFromXLSX(ctx context.Context, source string, r io.Reader) (*domain.Revision, error) {
	sites, rowErrs, err := s.parser.ParseWorkbook(r)
	if err != nil {
		return nil, apperrors.Unprocessable("file is not a readable XLSX workbook").WithCause(err)
	}
	if len(rowErrs) > 0 {
		s.logger.Warn("upload rejected",
			"source", source,
			"row_errors", len(rowErrs),
		)
		return nil, apperrors.UnprocessableWithDetails(
			"spreadsheet contains invalid rows",
			uploadErrorDetails{RowErrors: rowErrs},
		)
	}
	if len(sites) == 0 {
		return nil, apperrors.Unprocessable("spreadsheet contains no data rows")
	}

	// Category/criteria mismatches are advisory in the source data and
	// never block ingestion.
	for _, site := range sites {
		if !site.CategoryConsistent() {
			s.logger.Warn("category inconsistent with criteria",
				"site", site.ID,
				"category", site.Category,
				"criteria", domain.JoinCriteria(site.Criteria),
			)
		}
	}

	rev, err := domain.NewRevision(source, len(sites))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create revision")
	}

	if err := s.store.ReplaceAll(ctx, sites, rev); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "replace dataset")
	}

	s.logger.Info("dataset ingested",
		"source", source,
		"revision", rev.ID,
		"site_count", rev.SiteCount,
	)
	return rev, nil
}
