// Package report persists run history to sqlite. Reports are write-only:
// the checker never consults them, so every run probes every URL afresh.
package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rojanmagar2001/tabtidy/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	source     TEXT NOT NULL,
	checked    INTEGER NOT NULL,
	reachable  INTEGER NOT NULL,
	dead       INTEGER NOT NULL,
	missing    INTEGER NOT NULL,
	elapsed_ms INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS outcomes (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	url         TEXT NOT NULL,
	reachable   INTEGER NOT NULL,
	status_code INTEGER NOT NULL,
	reason      TEXT NOT NULL,
	elapsed_ms  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_outcomes_run ON outcomes(run_id);
`

// SQLite appends run records to a local sqlite database.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open report db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate report db: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) SaveRun(ctx context.Context, rec domain.RunRecord, outcomes []domain.Outcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report tx: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, source, checked, reachable, dead, missing, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, rec.StartedAt, rec.Source,
		rec.Summary.Checked, rec.Summary.Reachable, rec.Summary.Dead, rec.Summary.Missing,
		rec.Summary.Elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outcomes (run_id, url, reachable, status_code, reason, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare outcome insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range outcomes {
		if _, err := stmt.ExecContext(ctx, runID, o.URL, o.Reachable, o.StatusCode, o.Reason, o.Elapsed.Milliseconds()); err != nil {
			return fmt.Errorf("insert outcome for %s: %w", o.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report tx: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }
