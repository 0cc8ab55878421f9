package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStats(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/stats")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		TotalSites         int            `json:"total_sites"`
		SitesByCategory    map[string]int `json:"sites_by_category"`
		SitesInDanger      int            `json:"sites_in_danger"`
		TransboundarySites int            `json:"transboundary_sites"`
		CriteriaCounts     map[string]int `json:"criteria_counts"`
		SitesByDecade      map[string]int `json:"sites_by_decade"`
		Revision           *struct {
			ID        string `json:"id"`
			Source    string `json:"source"`
			SiteCount int    `json:"site_count"`
		} `json:"revision"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, 4, body.TotalSites)
	assert.Equal(t, map[string]int{"Cultural": 1, "Natural": 2, "Mixed": 1}, body.SitesByCategory)
	assert.Equal(t, 1, body.SitesInDanger)
	assert.Equal(t, 1, body.TransboundarySites)
	assert.Equal(t, 3, body.CriteriaCounts["n7"])
	assert.Equal(t, 1, body.SitesByDecade["1970s"])
	assert.Equal(t, 2, body.SitesByDecade["1980s"])

	require.NotNil(t, body.Revision)
	assert.Equal(t, "seed", body.Revision.Source)
	assert.Equal(t, 4, body.Revision.SiteCount)
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 4, body.SiteCount)
	assert.NotEmpty(t, body.Revision)
}

func TestGetIndex(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Name      string            `json:"name"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Name)
	assert.Equal(t, "/sites/all", body.Endpoints["all"])
	assert.Equal(t, "/sites/filter", body.Endpoints["filter"])
	assert.Contains(t, body.Endpoints, "geo")
	assert.Contains(t, body.Endpoints, "upload")
}
