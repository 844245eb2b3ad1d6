package recorder

import (
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

// SQLiteRecorder writes analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logger.Logger
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logger.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = logger.Nop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	// WAL lets the API read history while the batch writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}

	r := &SQLiteRecorder{db: db, log: log.With("component", "recorder"), now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	r.log.Infow("sqlite recorder opened", "path", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id          TEXT PRIMARY KEY,
			symbol          TEXT NOT NULL,
			recorded_at     INTEGER NOT NULL,
			as_of           INTEGER,
			source          TEXT,
			duration_ms     INTEGER,
			bars            INTEGER,
			current_price   REAL,
			trend           TEXT,
			trend_strength  INTEGER,
			profile         TEXT,
			rsi             REAL,
			atr             REAL,
			ema200          REAL,
			buy_price       REAL,
			second_buy      REAL,
			sell_price      REAL,
			stop_loss       REAL,
			take_profit     REAL,
			risk_reward     REAL,
			buy_reason      TEXT,
			sell_reason     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON analysis_runs(symbol, recorded_at)`,

		`CREATE TABLE IF NOT EXISTS analysis_zones (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL REFERENCES analysis_runs(run_id),
			side        TEXT NOT NULL,
			rank        INTEGER NOT NULL,
			center      REAL,
			min_price   REAL,
			max_price   REAL,
			score       REAL,
			level_count INTEGER,
			types       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_zones_run ON analysis_zones(run_id)`,

		`CREATE TABLE IF NOT EXISTS skipped_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol      TEXT NOT NULL,
			recorded_at INTEGER NOT NULL,
			reason      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_skipped_symbol ON skipped_runs(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return errors.Wrapf(err, "exec %q", s[:40])
		}
	}
	return nil
}

// RecordAnalysis stores the run headline plus its selected zones and returns the run id.
func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) (string, error) {
	if rec == nil || rec.Result == nil {
		return "", errors.Wrap(errors.ErrInvalidInput, "nil analysis record")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	res := rec.Result
	ind := res.Indicators
	recs := res.Recommendations
	runID := uuid.NewString()

	var secondBuy sql.NullFloat64
	if recs.SecondBuyPrice != nil {
		secondBuy = sql.NullFloat64{Float64: *recs.SecondBuyPrice, Valid: true}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return "", errors.Wrap(err, "begin")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`INSERT INTO analysis_runs
		(run_id, symbol, recorded_at, as_of, source, duration_ms, bars, current_price,
		 trend, trend_strength, profile, rsi, atr, ema200,
		 buy_price, second_buy, sell_price, stop_loss, take_profit, risk_reward,
		 buy_reason, sell_reason)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runID, rec.Symbol, r.now().Unix(), res.AsOf.Unix(), rec.Source, rec.Duration.Milliseconds(),
		res.Bars, res.CurrentPrice,
		string(res.Signals.Overall), res.Signals.TrendStrength, string(ind.Profile.Type),
		ind.RSI, ind.ATR, ind.EMA200,
		recs.BuyPrice, secondBuy, recs.SellPrice, recs.StopLoss, recs.TakeProfit, recs.RiskRewardRatio,
		recs.BuyReason, recs.SellReason,
	)
	if err != nil {
		return "", errors.Wrap(err, "insert run")
	}

	if err := insertZones(tx, runID, recs.AdvancedLevels.Support); err != nil {
		return "", err
	}
	if err := insertZones(tx, runID, recs.AdvancedLevels.Resistance); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "commit")
	}
	return runID, nil
}

func insertZones(tx *sql.Tx, runID string, zones []model.Zone) error {
	for rank, z := range zones {
		_, err := tx.Exec(`INSERT INTO analysis_zones
			(run_id, side, rank, center, min_price, max_price, score, level_count, types)
			VALUES (?,?,?,?,?,?,?,?,?)`,
			runID, string(z.Side), rank, z.Center, z.Min, z.Max, z.Score, z.LevelCount, joinTypes(z.Types),
		)
		if err != nil {
			return errors.Wrap(err, "insert zone")
		}
	}
	return nil
}

func joinTypes(types []model.Category) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ","
		}
		out += string(t)
	}
	return out
}

// RecordSkip notes a symbol that could not be analysed.
func (r *SQLiteRecorder) RecordSkip(symbol, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO skipped_runs (symbol, recorded_at, reason) VALUES (?,?,?)`,
		symbol, r.now().Unix(), reason)
	return errors.Wrap(err, "insert skip")
}

// RecentAnalyses returns up to limit runs for symbol, newest first.
func (r *SQLiteRecorder) RecentAnalyses(symbol string, limit int) ([]AnalysisSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(`SELECT r.run_id, r.symbol, r.recorded_at, r.as_of, r.current_price,
			r.trend, r.trend_strength, r.buy_price, r.sell_price, r.stop_loss, r.take_profit,
			r.risk_reward, r.profile,
			(SELECT COUNT(*) FROM analysis_zones z WHERE z.run_id = r.run_id)
		FROM analysis_runs r
		WHERE r.symbol = ?
		ORDER BY r.recorded_at DESC, r.rowid DESC
		LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	var out []AnalysisSummary
	for rows.Next() {
		var (
			s              AnalysisSummary
			recorded, asOf int64
			trend, prof    string
		)
		if err := rows.Scan(&s.RunID, &s.Symbol, &recorded, &asOf, &s.CurrentPrice,
			&trend, &s.TrendStrength, &s.BuyPrice, &s.SellPrice, &s.StopLoss, &s.TakeProfit,
			&s.RiskRewardRatio, &prof, &s.ZoneCount); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		s.RecordedAt = time.Unix(recorded, 0).UTC()
		s.AsOf = time.Unix(asOf, 0).UTC()
		s.Trend = model.TrendLabel(trend)
		s.Profile = model.ProfileType(prof)
		out = append(out, s)
	}
	return out, errors.Wrap(rows.Err(), "iterate runs")
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
