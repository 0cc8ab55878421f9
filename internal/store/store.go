// Package store provides SQLite-backed persistence for the heritage site
// dataset with an immutable in-memory snapshot for queries.
//
// All reads go through the published snapshot; ingestion writes the new
// dataset in one transaction and then swaps the snapshot pointer, so
// concurrent readers never observe a partially-replaced dataset.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/heritageatlas/heritage-server/internal/domain"
	"github.com/heritageatlas/heritage-server/internal/geo"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store holds the dataset database and the current query snapshot.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	mu       sync.Mutex // serializes dataset replacements
	snapshot atomic.Pointer[Snapshot]
}

// Snapshot is an immutable view of the dataset in spreadsheet row order.
type Snapshot struct {
	sites    []*domain.Site
	byID     map[string]*domain.Site
	revision *domain.Revision
}

// Sites returns all sites in original dataset order. Callers must not
// mutate the returned slice or the records it points to.
func (sn *Snapshot) Sites() []*domain.Site {
	return sn.sites
}

// ByID looks up a single site by its identifier.
func (sn *Snapshot) ByID(id string) (*domain.Site, bool) {
	s, ok := sn.byID[id]
	return s, ok
}

// Len returns the number of sites in the snapshot.
func (sn *Snapshot) Len() int {
	return len(sn.sites)
}

// Revision returns the revision that produced this snapshot, or nil if
// the dataset has never been loaded.
func (sn *Snapshot) Revision() *domain.Revision {
	return sn.revision
}

// Open creates the dataset store at the given path, configures WAL mode,
// runs the schema, and loads the current dataset into the first snapshot.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	s := &Store{db: db, logger: logger}

	snapshot, err := s.loadSnapshot(context.Background())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	s.snapshot.Store(snapshot)

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Snapshot returns the current dataset view. The returned snapshot stays
// consistent for the caller's whole request even if a replacement lands
// concurrently.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// ReplaceAll atomically replaces the whole dataset: the new sites and the
// revision record are written in a single transaction, and only after the
// commit succeeds is the new snapshot published. On any error the previous
// dataset and snapshot remain untouched.
func (s *Store) ReplaceAll(ctx context.Context, sites []*domain.Site, rev *domain.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM sites`); err != nil {
		return fmt.Errorf("clear sites: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sites (position, id, name, description, justification,
			country, region, category, criteria, year_inscribed,
			danger, transboundary, area_hectares, geometry)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, site := range sites {
		geometry, err := marshalGeometry(site.Geometry)
		if err != nil {
			return fmt.Errorf("site %s: %w", site.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			i,
			site.ID,
			site.Name,
			site.Description,
			site.Justification,
			site.Country,
			site.Region,
			string(site.Category),
			domain.JoinCriteria(site.Criteria),
			site.YearInscribed,
			boolToInt(site.Danger),
			boolToInt(site.Transboundary),
			site.AreaHectares,
			geometry,
		)
		if err != nil {
			return fmt.Errorf("insert site %s: %w", site.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO revisions (id, source, site_count, created_at)
		VALUES (?, ?, ?, ?)`,
		rev.ID, rev.Source, rev.SiteCount, rev.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	s.snapshot.Store(newSnapshot(sites, rev))

	if s.logger != nil {
		s.logger.Info("dataset replaced",
			"revision", rev.ID,
			"source", rev.Source,
			"site_count", rev.SiteCount,
		)
	}
	return nil
}

func newSnapshot(sites []*domain.Site, rev *domain.Revision) *Snapshot {
	byID := make(map[string]*domain.Site, len(sites))
	for _, s := range sites {
		byID[s.ID] = s
	}
	return &Snapshot{sites: sites, byID: byID, revision: rev}
}

// loadSnapshot reads the persisted dataset and latest revision back into
// memory. Called once at startup.
func (s *Store) loadSnapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, justification, country, region,
			category, criteria, year_inscribed, danger, transboundary,
			area_hectares, geometry
		FROM sites ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*domain.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rev, err := s.latestRevision(ctx)
	if err != nil {
		return nil, err
	}

	return newSnapshot(sites, rev), nil
}

func (s *Store) latestRevision(ctx context.Context) (*domain.Revision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, site_count, created_at
		FROM revisions ORDER BY created_at DESC LIMIT 1`)

	var rev domain.Revision
	var createdAt string
	err := row.Scan(&rev.ID, &rev.Source, &rev.SiteCount, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rev.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse revision time: %w", err)
	}
	return &rev, nil
}

// scanSite scans one sites row into a domain record.
func scanSite(scanner interface{ Scan(dest ...any) error }) (*domain.Site, error) {
	var site domain.Site
	var (
		category      string
		criteria      string
		danger        int
		transboundary int
		geometry      sql.NullString
	)

	err := scanner.Scan(
		&site.ID,
		&site.Name,
		&site.Description,
		&site.Justification,
		&site.Country,
		&site.Region,
		&category,
		&criteria,
		&site.YearInscribed,
		&danger,
		&transboundary,
		&site.AreaHectares,
		&geometry,
	)
	if err != nil {
		return nil, err
	}

	site.Category = domain.Category(category)
	site.Danger = danger != 0
	site.Transboundary = transboundary != 0

	parsed, ok := domain.SplitCriteria(criteria)
	if !ok {
		return nil, fmt.Errorf("site %s: bad criteria %q", site.ID, criteria)
	}
	site.Criteria = parsed

	if geometry.Valid && geometry.String != "" {
		var g geo.Geometry
		if err := json.Unmarshal([]byte(geometry.String), &g); err != nil {
			return nil, fmt.Errorf("site %s: bad geometry: %w", site.ID, err)
		}
		site.Geometry = &g
	}

	return &site, nil
}

func marshalGeometry(g *geo.Geometry) (any, error) {
	if g == nil {
		return nil, nil
	}
	raw, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshal geometry: %w", err)
	}
	return string(raw), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
