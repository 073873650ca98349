// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store caches fetched record sets in a local SQLite database so a
// repeated search can be answered without touching the API. The cache key
// is the canonical query string plus the record cap.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lmartins/bibliostat/internal/scopus"
	"github.com/lmartins/bibliostat/pkg/types"
)

const dbFile = "cache.db"

// Store manages the search cache database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at dir/cache.db, creating the
// schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			key TEXT PRIMARY KEY,
			total_matches INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			dups_removed INTEGER NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			search_key TEXT NOT NULL REFERENCES searches(key) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			doc_type TEXT,
			citations INTEGER,
			doi TEXT,
			url TEXT,
			PRIMARY KEY (search_key, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_search_key ON records(search_key)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores a fetch output under key, replacing any previous entry.
func (s *Store) Save(ctx context.Context, key string, out types.FetchOutput) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM searches WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clearing previous entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO searches (key, total_matches, skipped, dups_removed, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		key, out.TotalMatches, out.Skipped, out.DupsRemoved,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting search entry: %w", err)
	}

	for i, r := range out.Records {
		year := sql.NullInt64{}
		if r.Year != types.YearUnknown {
			year = sql.NullInt64{Int64: int64(r.Year), Valid: true}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (search_key, position, id, title, authors, year,
			 venue, doc_type, citations, doi, url)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			key, i, r.ID, r.Title, joinAuthors(r.Authors), year,
			r.Venue, r.DocType, r.CitationCount, r.DOI, r.URL)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load retrieves a cached fetch output. ok is false on a cache miss.
func (s *Store) Load(ctx context.Context, key string) (types.FetchOutput, bool, error) {
	var out types.FetchOutput
	err := s.db.QueryRowContext(ctx,
		`SELECT total_matches, skipped, dups_removed FROM searches WHERE key = ?`, key).
		Scan(&out.TotalMatches, &out.Skipped, &out.DupsRemoved)
	if err == sql.ErrNoRows {
		return types.FetchOutput{}, false, nil
	}
	if err != nil {
		return types.FetchOutput{}, false, fmt.Errorf("querying search entry: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, authors, year, venue, doc_type, citations, doi, url
		 FROM records WHERE search_key = ? ORDER BY position`, key)
	if err != nil {
		return types.FetchOutput{}, false, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r types.Record
		var authors string
		var year sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Title, &authors, &year, &r.Venue,
			&r.DocType, &r.CitationCount, &r.DOI, &r.URL); err != nil {
			return types.FetchOutput{}, false, fmt.Errorf("scanning record: %w", err)
		}
		r.Authors = scopus.SplitAuthors(authors)
		if year.Valid {
			r.Year = int(year.Int64)
		}
		out.Records = append(out.Records, r)
	}
	if err := rows.Err(); err != nil {
		return types.FetchOutput{}, false, fmt.Errorf("reading records: %w", err)
	}

	return out, true, nil
}

// Clear removes all cached searches.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM searches`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

func joinAuthors(authors []string) string {
	out := ""
	for i, a := range authors {
		if i > 0 {
			out += "; "
		}
		out += a
	}
	return out
}
