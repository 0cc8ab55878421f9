package query

import (
	"strconv"

	"github.com/heritageatlas/heritage-server/internal/domain"
	apperrors "github.com/heritageatlas/heritage-server/internal/errors"
)

// Pagination bounds. The default matches the original dataset export tool;
// the ceiling prevents unbounded responses.
const (
	DefaultPerPage = 100
	MaxPerPage     = 500
)

// PageParams is a validated, clamped pagination request.
type PageParams struct {
	Page    int
	PerPage int
}

// ParsePageParams validates raw page/per_page values. Empty strings take
// the defaults; non-integers and values below 1 are validation errors;
// per_page above the ceiling is clamped, not rejected.
func ParsePageParams(rawPage, rawPerPage string) (PageParams, error) {
	p := PageParams{Page: 1, PerPage: DefaultPerPage}
	fields := map[string]string{}

	if rawPage != "" {
		v, err := strconv.Atoi(rawPage)
		switch {
		case err != nil:
			fields["page"] = "expected an integer, got " + strconv.Quote(rawPage)
		case v < 1:
			fields["page"] = "must be at least 1"
		default:
			p.Page = v
		}
	}

	if rawPerPage != "" {
		v, err := strconv.Atoi(rawPerPage)
		switch {
		case err != nil:
			fields["per_page"] = "expected an integer, got " + strconv.Quote(rawPerPage)
		case v < 1:
			fields["per_page"] = "must be at least 1"
		default:
			p.PerPage = min(v, MaxPerPage)
		}
	}

	if len(fields) > 0 {
		return PageParams{}, apperrors.ValidationWithDetails("invalid pagination parameters", fields)
	}
	return p, nil
}

// Result is one page of matching sites plus the match count before
// pagination.
type Result struct {
	Items      []*domain.Site
	TotalCount int
	Page       int
	PerPage    int
	TotalPages int
}

// Run filters sites through match (nil matches everything), preserving the
// dataset's original relative order, then slices out the requested page.
// A page beyond the available range yields an empty item list with the
// true total still reported.
func Run(sites []*domain.Site, match func(*domain.Site) bool, p PageParams) Result {
	matched := sites
	if match != nil {
		matched = make([]*domain.Site, 0, len(sites))
		for _, s := range sites {
			if match(s) {
				matched = append(matched, s)
			}
		}
	}

	total := len(matched)
	totalPages := (total + p.PerPage - 1) / p.PerPage

	start := (p.Page - 1) * p.PerPage
	if start > total {
		start = total
	}
	end := min(start+p.PerPage, total)

	items := matched[start:end]
	if items == nil {
		items = []*domain.Site{}
	}

	return Result{
		Items:      items,
		TotalCount: total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: totalPages,
	}
}

// Filter returns every site matching the predicate, unpaginated, in
// dataset order. Used by the GeoJSON export where pagination does not
// apply.
func Filter(sites []*domain.Site, match func(*domain.Site) bool) []*domain.Site {
	if match == nil {
		return sites
	}
	matched := make([]*domain.Site, 0, len(sites))
	for _, s := range sites {
		if match(s) {
			matched = append(matched, s)
		}
	}
	return matched
}
