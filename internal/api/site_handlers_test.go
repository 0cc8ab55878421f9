package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePage(t *testing.T, body []byte) PaginatedSites {
	t.Helper()
	var page PaginatedSites
	require.NoError(t, json.Unmarshal(body, &page))
	return page
}

func decodeError(t *testing.T, body []byte) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(body, &apiErr))
	return apiErr
}

func TestListSitesDefaults(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/all")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	page := decodePage(t, resp.Body.Bytes())
	assert.Equal(t, 4, page.TotalCount)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PerPage)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 4)
	// Dataset order is preserved.
	assert.Equal(t, "100", page.Items[0].ID)
}

func TestListSitesCombinedFilters(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/filter?category=natural&transboundary=true")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp.Body.Bytes())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "400", page.Items[0].ID)
}

func TestListSitesCriteriaAnyOf(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/filter?criteria=c1,n10")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp.Body.Bytes())
	assert.Equal(t, 2, page.TotalCount)
}

func TestListSitesYearRange(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/filter?year_from=1981&year_to=1988")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp.Body.Bytes())
	assert.Equal(t, 2, page.TotalCount)
}

func TestListSitesPagination(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/filter?page=2&per_page=3")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp.Body.Bytes())
	assert.Equal(t, 4, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "400", page.Items[0].ID)

	// Out-of-range pages return an empty list, not an error.
	resp = ts.testAPI.Get("/sites/filter?page=50&per_page=3")
	require.Equal(t, http.StatusOK, resp.Code)
	page = decodePage(t, resp.Body.Bytes())
	assert.Empty(t, page.Items)
	assert.Equal(t, 4, page.TotalCount)
}

func TestListSitesBadParamsReturn400(t *testing.T) {
	ts := setupTestServer(t, nil)

	for _, path := range []string{
		"/sites/filter?danger=maybe",
		"/sites/filter?year_from=ancient",
		"/sites/filter?criteria=c1,z3",
		"/sites/filter?page=zero",
		"/sites/all?per_page=-5",
	} {
		resp := ts.testAPI.Get(path)
		require.Equal(t, http.StatusBadRequest, resp.Code, path)

		apiErr := decodeError(t, resp.Body.Bytes())
		assert.Equal(t, "VALIDATION", apiErr.Code, path)
		assert.NotEmpty(t, apiErr.Message, path)
	}
}

func TestGetSite(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/detail/300")
	require.Equal(t, http.StatusOK, resp.Code)

	var site map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &site))
	assert.Equal(t, "Mount Athos", site["name"])
	assert.Equal(t, "Mixed", site["category"])
}

func TestGetSiteNotFound(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/detail/999")
	require.Equal(t, http.StatusNotFound, resp.Code)

	apiErr := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestSearchSites(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/search?q=ARCHIPELAGO")
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp.Body.Bytes())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "100", page.Items[0].ID)
}

func TestSearchSitesEmptyTermReturnsAll(t *testing.T) {
	ts := setupTestServer(t, nil)

	for _, path := range []string{"/sites/search", "/sites/search?q="} {
		resp := ts.testAPI.Get(path)
		require.Equal(t, http.StatusOK, resp.Code, path)

		page := decodePage(t, resp.Body.Bytes())
		assert.Equal(t, 4, page.TotalCount, path)
		assert.Len(t, page.Items, 4, path)
	}
}

func TestSiteShortcuts(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/sites-in-danger")
	require.Equal(t, http.StatusOK, resp.Code)
	page := decodePage(t, resp.Body.Bytes())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "200", page.Items[0].ID)

	resp = ts.testAPI.Get("/sites/sites-transboundary")
	require.Equal(t, http.StatusOK, resp.Code)
	page = decodePage(t, resp.Body.Bytes())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "400", page.Items[0].ID)

	resp = ts.testAPI.Get("/sites/sites-by-country/greece")
	require.Equal(t, http.StatusOK, resp.Code)
	page = decodePage(t, resp.Body.Bytes())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "300", page.Items[0].ID)

	resp = ts.testAPI.Get("/sites/sites-by-criteria/n9")
	require.Equal(t, http.StatusOK, resp.Code)
	page = decodePage(t, resp.Body.Bytes())
	assert.Equal(t, 2, page.TotalCount)

	resp = ts.testAPI.Get("/sites/sites-by-year/1981")
	require.Equal(t, http.StatusOK, resp.Code)
	page = decodePage(t, resp.Body.Bytes())
	require.Len(t, page.Items, 1)
	assert.Equal(t, "200", page.Items[0].ID)
}
