package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceLists(t *testing.T) {
	ts := setupTestServer(t, nil)

	tests := []struct {
		path string
		want []string
	}{
		{"/sites/countries", []string{"Canada", "Ecuador", "Greece", "Jerusalem"}},
		{"/sites/regions", []string{"Arab States", "Europe and North America", "Latin America and the Caribbean"}},
		{"/sites/categories", []string{"Cultural", "Mixed", "Natural"}},
	}

	for _, tt := range tests {
		resp := ts.testAPI.Get(tt.path)
		require.Equal(t, http.StatusOK, resp.Code, tt.path)

		var body struct {
			Values []string `json:"values"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, tt.want, body.Values, tt.path)
	}
}

func TestReferenceCriteriaTable(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.testAPI.Get("/sites/criteria")
	require.Equal(t, http.StatusOK, resp.Code)

	var table CriteriaTable
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &table))
	require.Len(t, table.Cultural, 6)
	require.Len(t, table.Natural, 4)
	assert.Equal(t, "c1", string(table.Cultural[0].ID))
	assert.NotEmpty(t, table.Cultural[0].Description)
}
