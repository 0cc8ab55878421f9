package api

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/heritageatlas/heritage-server/internal/config"
	"github.com/heritageatlas/heritage-server/internal/domain"
	"github.com/heritageatlas/heritage-server/internal/geo"
	"github.com/heritageatlas/heritage-server/internal/service"
	"github.com/heritageatlas/heritage-server/internal/store"
)

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	testAPI humatest.TestAPI
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        "0",
			CORSOrigins: "*",
		},
		Upload: config.UploadConfig{
			MaxBytes:      20 << 20,
			RatePerMinute: 6000,
			RateBurst:     100,
		},
	}
}

func testSites() []*domain.Site {
	return []*domain.Site{
		{
			ID: "100", Name: "Galapagos Islands", Description: "Volcanic archipelago",
			Country: "Ecuador", Region: "Latin America and the Caribbean",
			Category: domain.CategoryNatural, Criteria: []domain.Criterion{"n7", "n8", "n9", "n10"},
			YearInscribed: 1978,
			Geometry:      geo.Point(-90.4, -0.81),
		},
		{
			ID: "200", Name: "Old City of Jerusalem", Justification: "Holy city",
			Country: "Jerusalem", Region: "Arab States",
			Category: domain.CategoryCultural, Criteria: []domain.Criterion{"c2", "c3", "c6"},
			YearInscribed: 1981, Danger: true,
		},
		{
			ID: "300", Name: "Mount Athos",
			Country: "Greece", Region: "Europe and North America",
			Category: domain.CategoryMixed, Criteria: []domain.Criterion{"c1", "n7"},
			YearInscribed: 1988,
			Geometry:      geo.Point(24.2, 40.16),
		},
		{
			ID: "400", Name: "Waterton Glacier International Peace Park",
			Country: "Canada", Region: "Europe and North America",
			Category: domain.CategoryNatural, Criteria: []domain.Criterion{"n7", "n9"},
			YearInscribed: 1995, Transboundary: true,
		},
	}
}

// setupTestServer creates a seeded API server backed by a fresh store.
func setupTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	log := testLogger()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	sites := testSites()
	rev, err := domain.NewRevision("seed", len(sites))
	require.NoError(t, err)
	require.NoError(t, st.ReplaceAll(context.Background(), sites, rev))

	if cfg == nil {
		cfg = testConfig()
	}

	services := &Services{
		Site:      service.NewSiteService(st, log),
		Reference: service.NewReferenceService(st, log),
		Stats:     service.NewStatsService(st, log),
		Ingest:    service.NewIngestService(st, log),
	}

	s := NewServer(cfg, st, services, log)

	return &testServer{
		Server:  s,
		testAPI: humatest.Wrap(t, s.api),
	}
}
