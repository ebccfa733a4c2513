package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"studywithme/internal/core/model"
)

// JournalFileName is the run history database kept in the resource directory.
const JournalFileName = "journal.db"

// Run outcomes stored in runs.status.
const (
	RunActive    = "active"
	RunCompleted = "completed"
	RunAborted   = "aborted"
)

// Journal records study runs and their completed work sessions in SQLite.
type Journal struct {
	db   *sql.DB
	path string
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
	Sessions   int
	Completed  int
}

// OpenJournal creates or opens the journal database at dbPath.
func OpenJournal(dbPath string) (*Journal, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	journal := &Journal{db: db, path: dbPath}
	if err := journal.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return journal, nil
}

func (journal *Journal) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id            TEXT PRIMARY KEY,
		started_at    TEXT NOT NULL,
		finished_at   TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'active',
		work_minutes  INTEGER NOT NULL,
		break_minutes INTEGER NOT NULL,
		sessions      INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS work_sessions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq         INTEGER NOT NULL,
		started_at  TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		UNIQUE(run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_work_sessions_finished ON work_sessions(finished_at);
	`
	_, err := journal.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (journal *Journal) Close() error {
	if journal.db == nil {
		return nil
	}
	return journal.db.Close()
}

// BeginRun inserts an active run and returns its ID.
func (journal *Journal) BeginRun(startedAt time.Time, config model.Config) (string, error) {
	id := uuid.NewString()
	_, err := journal.db.Exec(`
		INSERT INTO runs (id, started_at, work_minutes, break_minutes, sessions)
		VALUES (?, ?, ?, ?, ?)`,
		id, formatTime(startedAt), config.WorkMinutes, config.BreakMinutes, config.Sessions,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// RecordSession stores a finished work interval. seq is zero based.
func (journal *Journal) RecordSession(runID string, seq int, startedAt, finishedAt time.Time) error {
	_, err := journal.db.Exec(`
		INSERT INTO work_sessions (run_id, seq, started_at, finished_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO UPDATE SET finished_at = excluded.finished_at`,
		runID, seq, formatTime(startedAt), formatTime(finishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert work session: %w", err)
	}
	return nil
}

// FinishRun closes a run with status RunCompleted or RunAborted.
func (journal *Journal) FinishRun(runID string, finishedAt time.Time, status string) error {
	result, err := journal.db.Exec(
		`UPDATE runs SET finished_at = ?, status = ? WHERE id = ?`,
		formatTime(finishedAt), status, runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// CompletedOn counts work sessions finished on the calendar day of day,
// in day's location.
func (journal *Journal) CompletedOn(day time.Time) (int, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	var count int
	err := journal.db.QueryRow(
		`SELECT COUNT(*) FROM work_sessions WHERE finished_at >= ? AND finished_at < ?`,
		formatTime(from), formatTime(to),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count work sessions: %w", err)
	}
	return count, nil
}

// RecentRuns lists up to limit runs, newest first.
func (journal *Journal) RecentRuns(limit int) ([]RunSummary, error) {
	rows, err := journal.db.Query(`
		SELECT r.id, r.started_at, r.finished_at, r.status, r.sessions,
		       (SELECT COUNT(*) FROM work_sessions w WHERE w.run_id = r.id)
		FROM runs r
		ORDER BY r.started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run               RunSummary
			started, finished string
		)
		if err := rows.Scan(&run.ID, &started, &finished, &run.Status, &run.Sessions, &run.Completed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
