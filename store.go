package casepage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested case has no stored counter.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding per-case view counters.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed during a write; busy_timeout makes writers
	// wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS case_views (
    case_id TEXT PRIMARY KEY,
    views INTEGER NOT NULL DEFAULT 0,
    first_viewed TEXT NOT NULL,
    last_viewed TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_case_views_last_viewed ON case_views(last_viewed);
`)
	return err
}

// RecordView counts one view of caseID at the given time.
func (s *Store) RecordView(caseID string, at time.Time) error {
	ts := at.UTC().Format(timeLayout)
	_, err := s.db.Exec(`
INSERT INTO case_views (case_id, views, first_viewed, last_viewed)
VALUES (?, 1, ?, ?)
ON CONFLICT(case_id) DO UPDATE SET
    views = views + 1,
    last_viewed = excluded.last_viewed`, caseID, ts, ts)
	return err
}

// GetCaseStats returns the counter for caseID, or ErrNotFound if it was
// never viewed.
func (s *Store) GetCaseStats(caseID string) (CaseStats, error) {
	var views int
	var first, last string
	err := s.db.QueryRow(`SELECT views, first_viewed, last_viewed FROM case_views WHERE case_id = ?`, caseID).
		Scan(&views, &first, &last)
	if err != nil {
		return CaseStats{}, err
	}
	return newCaseStats(caseID, views, first, last)
}

// ListTopCases returns up to limit cases ordered by view count, most recently
// viewed first among equals.
func (s *Store) ListTopCases(limit int) ([]CaseStats, error) {
	rows, err := s.db.Query(`SELECT case_id, views, first_viewed, last_viewed FROM case_views ORDER BY views DESC, last_viewed DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CaseStats
	for rows.Next() {
		var id, first, last string
		var views int
		if err := rows.Scan(&id, &views, &first, &last); err != nil {
			return nil, err
		}
		cs, err := newCaseStats(id, views, first, last)
		if err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

// PruneViews deletes cases last viewed before cutoff and returns how many
// were removed.
func (s *Store) PruneViews(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM case_views WHERE last_viewed < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune case_views: %w", err)
	}
	return res.RowsAffected()
}

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type errorLogger interface {
	Errorf(format string, args ...interface{})
}

// StartCleanupScheduler prunes cases idle for retentionDays every interval.
// Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration, logger errorLogger) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				if _, err := s.PruneViews(cutoff); err != nil {
					logger.Errorf("cleanup error: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}

func newCaseStats(id string, views int, first, last string) (CaseStats, error) {
	f, err := time.Parse(timeLayout, first)
	if err != nil {
		return CaseStats{}, fmt.Errorf("parse first_viewed for %q: %w", id, err)
	}
	l, err := time.Parse(timeLayout, last)
	if err != nil {
		return CaseStats{}, fmt.Errorf("parse last_viewed for %q: %w", id, err)
	}
	return CaseStats{CaseID: id, Views: views, FirstViewed: f, LastViewed: l}, nil
}
