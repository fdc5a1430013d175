package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"AlphaLens/internal/model"
)

// SQLiteRecorder persists verdict history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while
	// the scan writes).
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
		`CREATE TABLE IF NOT EXISTS verdict_snapshots (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			run_id           TEXT,
			symbol           TEXT NOT NULL,
			close            REAL,
			volume           INTEGER,
			ema_20           REAL,
			rsi_14           REAL,
			adx_14           REAL,
			vwap             REAL,
			bb_upper         REAL,
			bb_middle        REAL,
			bb_lower         REAL,
			supertrend       REAL,
			supertrend_dir   REAL,
			trend_valid      INTEGER,
			momentum         TEXT,
			volume_confirmed INTEGER,
			score            INTEGER,
			action           TEXT,
			reasoning        TEXT,
			notes            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verdict_ts ON verdict_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_verdict_symbol ON verdict_snapshots(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable converts NaN indicator values to NULL; SQLite has no NaN.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) RecordVerdict(snap *VerdictSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := snap.Report.Series
	latest := s.Latest()
	analysis := snap.Report.Analysis
	v := snap.Report.Verdict

	_, err := r.db.Exec(`INSERT INTO verdict_snapshots
		(timestamp, run_id, symbol, close, volume,
		 ema_20, rsi_14, adx_14, vwap, bb_upper, bb_middle, bb_lower,
		 supertrend, supertrend_dir,
		 trend_valid, momentum, volume_confirmed,
		 score, action, reasoning, notes)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.RunID, snap.Symbol, latest.Close, latest.Volume,
		nullable(s.LatestValue(model.ColEMA)),
		nullable(s.LatestValue(model.ColRSI)),
		nullable(s.LatestValue(model.ColADX)),
		nullable(s.LatestValue(model.ColVWAP)),
		nullable(s.LatestValue(model.ColBBUpper)),
		nullable(s.LatestValue(model.ColBBMiddle)),
		nullable(s.LatestValue(model.ColBBLower)),
		nullable(s.LatestValue(model.ColSuperTrend)),
		nullable(s.LatestValue(model.ColSuperTrendDir)),
		analysis.TrendValid, string(analysis.Momentum), analysis.VolumeConfirmed,
		v.Score, string(v.Action), v.Reasoning, joinNotes(analysis),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
