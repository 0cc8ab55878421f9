// Package query translates raw request parameters into predicates over the
// site dataset and runs paginated queries against a snapshot.
package query

import (
	"strconv"
	"strings"

	"github.com/heritageatlas/heritage-server/internal/domain"
	apperrors "github.com/heritageatlas/heritage-server/internal/errors"
)

// RawFilters carries filter parameters exactly as they arrived on the
// query string. Absent parameters are empty strings and impose no
// constraint; values are parsed (and rejected with a validation error)
// here rather than by the transport layer.
type RawFilters struct {
	Country       string
	Region        string
	Category      string
	Danger        string
	Transboundary string
	YearFrom      string
	YearTo        string
	Search        string
	Criteria      string
}

// Filters is the typed form of a recognized filter set.
type Filters struct {
	Country       string
	Region        string
	Category      string
	Danger        *bool
	Transboundary *bool
	YearFrom      *int
	YearTo        *int
	Search        string
	Criteria      []domain.Criterion
}

// ParseFilters validates raw parameter values and produces typed filters.
// Any unparseable value yields a VALIDATION error carrying field-level
// detail; the filters themselves never reject a site for having an
// unmatched-but-wellformed value (an unknown country just matches nothing).
func ParseFilters(raw RawFilters) (*Filters, error) {
	f := &Filters{
		Country:  raw.Country,
		Region:   raw.Region,
		Category: raw.Category,
		Search:   raw.Search,
	}
	fields := map[string]string{}

	var err error
	if f.Danger, err = parseOptionalBool(raw.Danger); err != nil {
		fields["danger"] = err.Error()
	}
	if f.Transboundary, err = parseOptionalBool(raw.Transboundary); err != nil {
		fields["transboundary"] = err.Error()
	}
	if f.YearFrom, err = parseOptionalInt(raw.YearFrom); err != nil {
		fields["year_from"] = err.Error()
	}
	if f.YearTo, err = parseOptionalInt(raw.YearTo); err != nil {
		fields["year_to"] = err.Error()
	}

	if strings.TrimSpace(raw.Criteria) != "" {
		criteria, ok := domain.SplitCriteria(raw.Criteria)
		if !ok {
			fields["criteria"] = "unknown criterion code (expected c1..c6 or n7..n10)"
		}
		f.Criteria = criteria
	}

	if len(fields) > 0 {
		return nil, apperrors.ValidationWithDetails("invalid filter parameters", fields)
	}
	return f, nil
}

// Match reports whether the site satisfies every present filter.
// Distinct parameters combine with AND; the criteria list matches if the
// site carries at least one of the listed codes (OR within the list).
func (f *Filters) Match(s *domain.Site) bool {
	if f.Country != "" && !strings.EqualFold(f.Country, s.Country) {
		return false
	}
	if f.Region != "" && !strings.EqualFold(f.Region, s.Region) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, string(s.Category)) {
		return false
	}
	if f.Danger != nil && *f.Danger != s.Danger {
		return false
	}
	if f.Transboundary != nil && *f.Transboundary != s.Transboundary {
		return false
	}
	if f.YearFrom != nil && s.YearInscribed < *f.YearFrom {
		return false
	}
	if f.YearTo != nil && s.YearInscribed > *f.YearTo {
		return false
	}
	if f.Search != "" && !matchesText(s, f.Search) {
		return false
	}
	if len(f.Criteria) > 0 && !matchesAnyCriterion(s, f.Criteria) {
		return false
	}
	return true
}

// matchesText reports whether any of name, description, or justification
// contains the term, case-insensitively.
func matchesText(s *domain.Site, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.Description), term) ||
		strings.Contains(strings.ToLower(s.Justification), term)
}

func matchesAnyCriterion(s *domain.Site, criteria []domain.Criterion) bool {
	for _, c := range criteria {
		if s.HasCriterion(c) {
			return true
		}
	}
	return false
}

func parseOptionalBool(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, apperrors.Validationf("expected true or false, got %q", raw)
	}
}

func parseOptionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.Validationf("expected an integer, got %q", raw)
	}
	return &v, nil
}
