package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad hoc reads don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			task       TEXT,
			succeeded  INTEGER,
			failed     INTEGER,
			duration_ms INTEGER,
			note       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS items (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			task      TEXT,
			symbol    TEXT,
			ok        INTEGER,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_ts ON items(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_items_symbol ON items(symbol)`,

		`CREATE TABLE IF NOT EXISTS series_syncs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			series_id TEXT,
			fetched   INTEGER,
			changed   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_series_ts ON series_syncs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(timestamp, task, succeeded, failed, duration_ms, note)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Task, rec.Succeeded, rec.Failed,
		rec.Duration.Milliseconds(), rec.Note,
	)
	return err
}

func (r *SQLiteRecorder) RecordItem(rec *ItemRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok := 0
	if rec.Ok {
		ok = 1
	}
	_, err := r.db.Exec(`INSERT INTO items
		(timestamp, task, symbol, ok, error)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), rec.Task, rec.Symbol, ok, rec.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordSeries(rec *SeriesRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO series_syncs
		(timestamp, series_id, fetched, changed)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), rec.SeriesID, rec.Fetched, rec.Changed,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
