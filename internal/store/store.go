// Package store persists the paper archive for the batch pipeline.
//
// SQLite is the pipeline's source of truth: every paper ever fetched
// is upserted here, and snapshot exports feed the static site, the
// RSS feed and the interactive browser. The browse UI itself never
// touches the database - it loads one exported snapshot and works
// in memory.
//
// # Thread Safety
//
// Store is safe for concurrent use; the underlying sql.DB serializes
// access. The pipeline is single-writer in practice.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fogbound/paperscope/internal/catalog"
	"github.com/fogbound/paperscope/internal/logging"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Store handles persistence of fetched papers.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given path, applying migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS papers (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		authors TEXT NOT NULL DEFAULT '[]',
		abstract TEXT,
		published TEXT,
		updated TEXT,
		categories TEXT NOT NULL DEFAULT '[]',
		tags TEXT NOT NULL DEFAULT '[]',
		pdf_url TEXT,
		abs_url TEXT,
		figure_url TEXT,
		figure_caption TEXT,
		fetched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_papers_published ON papers(published DESC);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY,
		started_at DATETIME NOT NULL,
		fetched INTEGER DEFAULT 0,
		added INTEGER DEFAULT 0
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Upsert merges fetched papers into the archive, deduplicating by id.
// New papers are inserted as-is; existing papers get their metadata
// refreshed while non-empty tags are preserved, so manual tag edits
// survive re-fetches. Returns the number of newly added papers.
func (s *Store) Upsert(papers []catalog.Paper) (int, error) {
	if len(papers) == 0 {
		return 0, nil
	}

	existing, err := s.ids()
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op after commit.
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO papers (id, title, authors, abstract, published, updated, categories, tags, pdf_url, abs_url, figure_url, figure_caption, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			authors = excluded.authors,
			abstract = excluded.abstract,
			published = excluded.published,
			updated = excluded.updated,
			categories = excluded.categories,
			tags = CASE WHEN papers.tags = '[]' OR papers.tags = ''
				THEN excluded.tags ELSE papers.tags END,
			pdf_url = excluded.pdf_url,
			abs_url = excluded.abs_url,
			fetched_at = excluded.fetched_at
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	added := 0
	for _, p := range papers {
		if p.ID == "" {
			continue
		}
		_, err := stmt.Exec(
			p.ID,
			p.Title,
			marshalList(p.Authors),
			p.Abstract,
			p.Published,
			p.Updated,
			marshalList(p.Categories),
			marshalList(p.Tags),
			p.PDFURL,
			p.AbsURL,
			p.FigureURL,
			p.FigureCaption,
			now,
		)
		if err != nil {
			logging.Warn("Failed to upsert paper", "id", p.ID, "error", err)
			continue
		}
		if !existing[p.ID] {
			existing[p.ID] = true
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return added, nil
}

// Snapshot exports the full archive as a catalog, ordered by
// published date descending (lexicographic on the stored string, so
// dateless papers collect at the end).
func (s *Store) Snapshot() (*catalog.Catalog, error) {
	rows, err := s.db.Query(`
		SELECT id, title, authors, abstract, published, updated, categories, tags, pdf_url, abs_url, figure_url, figure_caption
		FROM papers
		ORDER BY published DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query papers: %w", err)
	}
	defer rows.Close()

	var papers []catalog.Paper
	for rows.Next() {
		var p catalog.Paper
		var authors, categories, tags string
		err := rows.Scan(
			&p.ID, &p.Title, &authors, &p.Abstract, &p.Published, &p.Updated,
			&categories, &tags, &p.PDFURL, &p.AbsURL, &p.FigureURL, &p.FigureCaption,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paper: %w", err)
		}
		p.Authors = unmarshalList(authors)
		p.Categories = unmarshalList(categories)
		p.Tags = unmarshalList(tags)
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return catalog.New(papers, time.Now().UTC().Format(time.RFC3339)), nil
}

// Count returns the number of archived papers.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count papers: %w", err)
	}
	return count, nil
}

// RecordRun logs one pipeline run for bookkeeping.
func (s *Store) RecordRun(started time.Time, fetched, added int) error {
	_, err := s.db.Exec(
		"INSERT INTO runs (started_at, fetched, added) VALUES (?, ?, ?)",
		started, fetched, added,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ids() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT id FROM papers")
	if err != nil {
		return nil, fmt.Errorf("failed to query ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

// marshalList stores string slices as JSON text. nil marshals to "[]"
// so the tag-preservation CASE in Upsert stays simple.
func marshalList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalList(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
