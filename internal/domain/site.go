// Package domain contains the core data model for the Heritage Atlas server.
package domain

import (
	"strings"

	"github.com/heritageatlas/heritage-server/internal/geo"
)

// Category classifies a site as Cultural, Natural, or Mixed.
type Category string

// The three inscription categories.
const (
	CategoryCultural Category = "Cultural"
	CategoryNatural  Category = "Natural"
	CategoryMixed    Category = "Mixed"
)

// ParseCategory matches a raw string against the known categories,
// case-insensitively. Returns false for anything outside the vocabulary.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryCultural, CategoryNatural, CategoryMixed} {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Site is one inscribed World Heritage Site.
//
// Records are bulk-replaced by ingestion; between uploads the dataset is
// read-only and no per-record edits exist.
type Site struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Justification string        `json:"justification,omitempty"`
	Country       string        `json:"country"`
	Region        string        `json:"region"`
	Category      Category      `json:"category"`
	Criteria      []Criterion   `json:"criteria"`
	YearInscribed int           `json:"year_inscribed"`
	Danger        bool          `json:"danger"`
	Transboundary bool          `json:"transboundary"`
	AreaHectares  float64       `json:"area_hectares,omitempty"`
	Geometry      *geo.Geometry `json:"geometry,omitempty"`
}

// HasCriterion reports whether the site is inscribed under c.
func (s *Site) HasCriterion(c Criterion) bool {
	for _, have := range s.Criteria {
		if have == c {
			return true
		}
	}
	return false
}

// Decade returns the inscription decade bucket (1978 -> 1970).
func (s *Site) Decade() int {
	return s.YearInscribed / 10 * 10
}

// CategoryConsistent reports whether the category agrees with at least one
// criterion prefix: cultural codes imply Cultural or Mixed, natural codes
// imply Natural or Mixed. Advisory only, never enforced at read time.
func (s *Site) CategoryConsistent() bool {
	var cultural, natural bool
	for _, c := range s.Criteria {
		if c.Cultural() {
			cultural = true
		} else {
			natural = true
		}
	}

	switch s.Category {
	case CategoryCultural:
		return cultural
	case CategoryNatural:
		return natural
	case CategoryMixed:
		return cultural && natural
	default:
		return false
	}
}
