package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"StockPulse/internal/model"
)

// SQLiteRecorder keeps an audit trail of analysis runs in a SQLite database.
// It is write-only from the application's point of view.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

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
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT    NOT NULL,
			start_date     TEXT    NOT NULL,
			row_count      INTEGER,
			live_open      REAL,
			live_last      REAL,
			live_diff      REAL,
			live_pct       REAL,
			live_direction TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON analysis_runs(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS indicator_rows (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			rsi    REAL,
			rvi    REAL,
			run_id INTEGER NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis stores one run and upserts its rows by (symbol, date).
func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var liveOpen, liveLast, liveDiff, livePct sql.NullFloat64
	var liveDir sql.NullString
	if d := a.Live; d != nil {
		liveOpen = nullFloat(d.Open)
		liveLast = nullFloat(d.Last)
		liveDiff = nullFloat(d.PriceDiff)
		livePct = nullFloat(d.PercentChange)
		liveDir = sql.NullString{String: string(d.Direction), Valid: true}
	}

	res, err := tx.Exec(`INSERT INTO analysis_runs
		(timestamp, symbol, start_date, row_count, live_open, live_last, live_diff, live_pct, live_direction)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		a.FetchedAt.Unix(), a.Symbol, a.Start.Format("2006-01-02"), len(a.Rows),
		liveOpen, liveLast, liveDiff, livePct, liveDir,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO indicator_rows
		(symbol, date, open, high, low, close, volume, rsi, rvi, run_id)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low, close=excluded.close,
			volume=excluded.volume, rsi=excluded.rsi, rvi=excluded.rvi, run_id=excluded.run_id`)
	if err != nil {
		return fmt.Errorf("prepare rows: %w", err)
	}
	defer stmt.Close()

	for _, row := range a.Rows {
		if _, err := stmt.Exec(
			a.Symbol, row.Date.Format("2006-01-02"),
			row.Open, row.High, row.Low, row.Close, row.Volume,
			nullFloat(row.RSI), nullFloat(row.RVI), runID,
		); err != nil {
			return fmt.Errorf("insert row %s: %w", row.Date.Format("2006-01-02"), err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

// nullFloat maps NaN to SQL NULL.
func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
