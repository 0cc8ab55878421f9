package query

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heritageatlas/heritage-server/internal/domain"
	apperrors "github.com/heritageatlas/heritage-server/internal/errors"
)

func TestParsePageParamsDefaults(t *testing.T) {
	p, err := ParsePageParams("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestParsePageParamsExplicit(t *testing.T) {
	p, err := ParsePageParams("3", "25")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.PerPage)
}

func TestParsePageParamsClampsPerPage(t *testing.T) {
	p, err := ParsePageParams("1", "9999")
	require.NoError(t, err)
	assert.Equal(t, MaxPerPage, p.PerPage)
}

func TestParsePageParamsRejectsBadValues(t *testing.T) {
	for _, tc := range []struct{ page, perPage string }{
		{"zero", ""},
		{"0", ""},
		{"-1", ""},
		{"", "abc"},
		{"", "0"},
	} {
		_, err := ParsePageParams(tc.page, tc.perPage)
		require.Error(t, err, "page=%q per_page=%q", tc.page, tc.perPage)

		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	}
}

func numberedSites(n int) []*domain.Site {
	sites := make([]*domain.Site, n)
	for i := range sites {
		sites[i] = &domain.Site{ID: strconv.Itoa(i), YearInscribed: 1978 + i}
	}
	return sites
}

func TestRunPaginates(t *testing.T) {
	sites := numberedSites(25)

	r := Run(sites, nil, PageParams{Page: 1, PerPage: 10})
	assert.Equal(t, 25, r.TotalCount)
	assert.Equal(t, 3, r.TotalPages)
	require.Len(t, r.Items, 10)
	assert.Equal(t, "0", r.Items[0].ID)

	r = Run(sites, nil, PageParams{Page: 3, PerPage: 10})
	require.Len(t, r.Items, 5)
	assert.Equal(t, "20", r.Items[0].ID)
}

func TestRunPreservesOrder(t *testing.T) {
	sites := numberedSites(10)
	even := func(s *domain.Site) bool { return s.YearInscribed%2 == 0 }

	r := Run(sites, even, PageParams{Page: 1, PerPage: 100})
	require.Len(t, r.Items, 5)
	prev := -1
	for _, s := range r.Items {
		assert.Greater(t, s.YearInscribed, prev)
		prev = s.YearInscribed
	}
}

func TestRunPageBeyondRange(t *testing.T) {
	sites := numberedSites(5)

	r := Run(sites, nil, PageParams{Page: 9, PerPage: 10})
	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
	assert.Equal(t, 5, r.TotalCount)
	assert.Equal(t, 1, r.TotalPages)
}

func TestRunEmptyDataset(t *testing.T) {
	r := Run(nil, nil, PageParams{Page: 1, PerPage: 10})
	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
	assert.Equal(t, 0, r.TotalCount)
	assert.Equal(t, 0, r.TotalPages)
}

func TestFilterUnpaginated(t *testing.T) {
	sites := numberedSites(8)
	matched := Filter(sites, func(s *domain.Site) bool { return s.YearInscribed >= 1982 })
	assert.Len(t, matched, 4)

	all := Filter(sites, nil)
	assert.Len(t, all, 8)
}
