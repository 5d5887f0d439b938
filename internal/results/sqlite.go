package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps runs in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	scores, err := json.Marshal(run.Scores)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (sim, seed, turns, finished, initial_value, collected_value, scores)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sim, seed) DO UPDATE SET
			turns = excluded.turns,
			finished = excluded.finished,
			initial_value = excluded.initial_value,
			collected_value = excluded.collected_value,
			scores = excluded.scores
	`, run.Sim, run.Seed, run.Turns, boolToInt(run.Finished), run.InitialValue, run.CollectedValue, string(scores))
	return err
}

func (s *SQLiteStore) ListRuns(ctx context.Context, sim string) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	query := `SELECT sim, seed, turns, finished, initial_value, collected_value, scores FROM runs`
	var args []any
	if sim != "" {
		query += ` WHERE sim = ?`
		args = append(args, sim)
	}
	query += ` ORDER BY sim, seed`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r        Run
			finished int
			scores   string
		)
		if err := rows.Scan(&r.Sim, &r.Seed, &r.Turns, &finished, &r.InitialValue, &r.CollectedValue, &scores); err != nil {
			return nil, err
		}
		r.Finished = finished != 0
		if err := json.Unmarshal([]byte(scores), &r.Scores); err != nil {
			return nil, fmt.Errorf("decode scores for %s seed %d: %w", r.Sim, r.Seed, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			sim TEXT NOT NULL,
			seed INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			finished INTEGER NOT NULL,
			initial_value INTEGER NOT NULL,
			collected_value INTEGER NOT NULL,
			scores TEXT NOT NULL,
			PRIMARY KEY (sim, seed)
		);
	`)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
