package domain

import "strings"

// Criterion is one of the ten official inscription criteria:
// c1..c6 cultural, n7..n10 natural.
type Criterion string

// Criteria is the fixed criterion vocabulary, in official order.
var Criteria = []Criterion{
	"c1", "c2", "c3", "c4", "c5", "c6",
	"n7", "n8", "n9", "n10",
}

// criterionDescriptions holds the official descriptive text per code.
// Static reference data, not derived from the dataset.
var criterionDescriptions = map[Criterion]string{
	"c1":  "Represents a masterpiece of human creative genius",
	"c2":  "Exhibits an important interchange of human values",
	"c3":  "Bears a unique or exceptional testimony to a cultural tradition",
	"c4":  "Outstanding example of a type of building, architecture or landscape",
	"c5":  "Outstanding example of a traditional human settlement or land-use",
	"c6":  "Associated with events or living traditions, ideas, or beliefs",
	"n7":  "Contains superlative natural phenomena or exceptional natural beauty",
	"n8":  "Outstanding example representing major stages of Earth's history",
	"n9":  "Outstanding example representing significant ecological and biological processes",
	"n10": "Contains the most important natural habitats for conservation of biological diversity",
}

// ParseCriterion matches a raw string against the vocabulary,
// case-insensitively. Returns false for unknown codes.
func ParseCriterion(s string) (Criterion, bool) {
	code := Criterion(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := criterionDescriptions[code]; !ok {
		return "", false
	}
	return code, true
}

// Cultural reports whether the criterion is a cultural code (c1..c6).
func (c Criterion) Cultural() bool {
	return strings.HasPrefix(string(c), "c")
}

// Description returns the official descriptive text for the criterion.
func (c Criterion) Description() string {
	return criterionDescriptions[c]
}

// CriterionInfo pairs a criterion code with its official text.
type CriterionInfo struct {
	ID          Criterion `json:"id"`
	Description string    `json:"description"`
}

// CriteriaInfo returns the full static lookup table, split into cultural
// and natural codes.
func CriteriaInfo() (cultural, natural []CriterionInfo) {
	for _, c := range Criteria {
		info := CriterionInfo{ID: c, Description: c.Description()}
		if c.Cultural() {
			cultural = append(cultural, info)
		} else {
			natural = append(natural, info)
		}
	}
	return cultural, natural
}

// JoinCriteria renders a criteria set as a comma-separated code list.
func JoinCriteria(criteria []Criterion) string {
	codes := make([]string, len(criteria))
	for i, c := range criteria {
		codes[i] = string(c)
	}
	return strings.Join(codes, ",")
}

// SplitCriteria parses a comma-separated code list. Unknown codes fail.
func SplitCriteria(s string) ([]Criterion, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	parts := strings.Split(s, ",")
	criteria := make([]Criterion, 0, len(parts))
	for _, part := range parts {
		c, ok := ParseCriterion(part)
		if !ok {
			return nil, false
		}
		criteria = append(criteria, c)
	}
	return criteria, true
}
