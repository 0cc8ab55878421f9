package domain

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Revision records one full dataset replacement.
type Revision struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	SiteCount int       `json:"site_count"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRevision creates a revision record with a fresh NanoID.
func NewRevision(source string, siteCount int) (*Revision, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate revision id: %w", err)
	}
	return &Revision{
		ID:        "rev-" + id,
		Source:    source,
		SiteCount: siteCount,
		CreatedAt: time.Now().UTC(),
	}, nil
}
