package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"FinDocSignal/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
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

	// WAL lets the CLI read history while the bot writes.
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
		`CREATE TABLE IF NOT EXISTS analyses (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			source       TEXT,
			points       INTEGER,
			first_date   TEXT,
			last_date    TEXT,
			last_close   REAL,
			ma_window    INTEGER,
			latest_ma    REAL,
			trend_slope  REAL,
			rsi          REAL,
			range_high   REAL,
			range_low    REAL,
			positive     INTEGER,
			neutral      REAL,
			negative     INTEGER,
			label        TEXT,
			rationale    TEXT,
			price_signal TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS anomalies (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			idx         INTEGER,
			day         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_anomalies_analysis ON anomalies(analysis_id)`,

		`CREATE TABLE IF NOT EXISTS documents (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			name      TEXT,
			type      TEXT,
			source    TEXT,
			length    INTEGER
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps NaN and infinities to SQL NULL. Readers turn NULL back into NaN.
func nullable(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func dateText(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}

func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pos, neg, neutral any
	if s := a.Sentiment; s != nil {
		pos, neg, neutral = s.Positive, s.Negative, s.Neutral
	}
	ts := a.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO analyses
		(id, timestamp, symbol, source, points, first_date, last_date, last_close,
		 ma_window, latest_ma, trend_slope, rsi, range_high, range_low,
		 positive, neutral, negative, label, rationale, price_signal)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, ts.Unix(), strings.ToUpper(a.Symbol), a.Source, a.Points,
		dateText(a.FirstDate), dateText(a.LastDate), a.LastClose,
		a.MAWindow, nullable(a.LatestMA), nullable(a.TrendSlope), nullable(a.RSI), a.RangeHigh, a.RangeLow,
		pos, neutral, neg, string(a.Recommend.Label), a.Recommend.Rationale, string(a.PriceSignal),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	for i, idx := range a.Anomalies {
		var day any
		if i < len(a.AnomalyDays) {
			day = dateText(a.AnomalyDays[i])
		}
		if _, err := tx.Exec(`INSERT INTO anomalies (analysis_id, symbol, idx, day) VALUES (?,?,?,?)`,
			a.ID, strings.ToUpper(a.Symbol), idx, day); err != nil {
			return fmt.Errorf("insert anomaly: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordDocument(doc *model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO documents (timestamp, name, type, source, length) VALUES (?,?,?,?,?)`,
		time.Now().Unix(), doc.Name, doc.Type, string(doc.Source), len(doc.Content),
	)
	return err
}

// RecentAnalyses returns up to limit analyses of symbol, newest first.
func (r *SQLiteRecorder) RecentAnalyses(symbol string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(`SELECT a.id, a.timestamp, a.symbol, a.source, a.points,
			a.last_close, a.latest_ma, a.trend_slope, a.rsi,
			a.positive, a.neutral, a.negative, a.label, a.price_signal,
			(SELECT COUNT(*) FROM anomalies n WHERE n.analysis_id = a.id)
		FROM analyses a
		WHERE a.symbol = ?
		ORDER BY a.timestamp DESC, a.rowid DESC
		LIMIT ?`, strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e        Entry
			ts       int64
			ma       sql.NullFloat64
			slope    sql.NullFloat64
			rsi      sql.NullFloat64
			pos, neg sql.NullInt64
			neutral  sql.NullFloat64
			label    string
			signal   string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Symbol, &e.Source, &e.Points,
			&e.LastClose, &ma, &slope, &rsi,
			&pos, &neutral, &neg, &label, &signal, &e.Anomalies); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0)
		e.LatestMA = orNaN(ma)
		e.TrendSlope = orNaN(slope)
		e.RSI = orNaN(rsi)
		if pos.Valid {
			e.Sentiment = &model.SentimentScores{
				Positive: int(pos.Int64),
				Neutral:  neutral.Float64,
				Negative: int(neg.Int64),
			}
		}
		e.Label = model.Label(label)
		e.PriceSignal = model.Label(signal)
		out = append(out, e)
	}
	return out, rows.Err()
}

func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
