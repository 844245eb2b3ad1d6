package scheduler

import (
	"context"
	"time"

	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/model"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/strategy"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

// Analyzer runs collect -> engine for one symbol and fans the outcome out
// to the result cache, the recorder and the metrics.
type Analyzer struct {
	collector *collector.Collector
	engine    *strategy.Engine
	cache     *cache.TTL[*model.TechnicalAnalysisResult]
	recorder  recorder.Recorder
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// NewAnalyzer wires the per-symbol pipeline. rec, m and log may be nil.
func NewAnalyzer(
	col *collector.Collector,
	eng *strategy.Engine,
	c *cache.TTL[*model.TechnicalAnalysisResult],
	rec recorder.Recorder,
	m *metrics.Metrics,
	log *logger.Logger,
) *Analyzer {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Analyzer{
		collector: col,
		engine:    eng,
		cache:     c,
		recorder:  rec,
		metrics:   m,
		log:       log.With("component", "analyzer"),
	}
}

// Analyze serves a cached result when one is fresh, otherwise refreshes.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*model.TechnicalAnalysisResult, error) {
	sym, ok := collector.NormalizeSymbol(symbol)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "symbol %q", symbol)
	}
	if res, hit := a.cache.Get(sym); hit {
		a.metrics.CacheLookup(true)
		return res, nil
	}
	a.metrics.CacheLookup(false)
	return a.Refresh(ctx, sym)
}

// Refresh always recomputes the analysis and replaces the cached entry.
func (a *Analyzer) Refresh(ctx context.Context, symbol string) (*model.TechnicalAnalysisResult, error) {
	start := time.Now()

	series, err := a.collector.Collect(ctx, symbol)
	if err != nil {
		a.metrics.ObserveAnalysis(metrics.OutcomeError, 0)
		a.metrics.RecordError("collector")
		a.log.Warnw("collect failed", "symbol", symbol, "error", err)
		return nil, err
	}

	res, err := a.engine.Analyze(series)
	if err != nil {
		if errors.Is(err, errors.ErrInsufficientHistory) {
			a.metrics.ObserveAnalysis(metrics.OutcomeInsufficient, 0)
			a.log.Infow("skipping symbol", "symbol", series.Symbol, "reason", err.Error())
			if rerr := a.recorder.RecordSkip(series.Symbol, err.Error()); rerr != nil {
				a.metrics.RecordError("recorder")
				a.log.Errorw("record skip failed", "symbol", series.Symbol, "error", rerr)
			}
			return nil, err
		}
		a.metrics.ObserveAnalysis(metrics.OutcomeError, 0)
		a.metrics.RecordError("engine")
		return nil, errors.Wrapf(err, "analyze %s", series.Symbol)
	}

	took := time.Since(start)
	a.metrics.ObserveAnalysis(metrics.OutcomeOK, took)
	a.cache.Set(series.Symbol, res)

	runID, err := a.recorder.RecordAnalysis(&recorder.AnalysisRecord{
		Symbol:   series.Symbol,
		Source:   a.collector.Source(),
		Duration: took,
		Result:   res,
	})
	if err != nil {
		a.metrics.RecordError("recorder")
		a.log.Errorw("record analysis failed", "symbol", series.Symbol, "error", err)
	}

	a.log.Debugw("analysis complete",
		"symbol", series.Symbol, "run_id", runID, "trend", res.Signals.Overall, "took", took)
	return res, nil
}

// Pivots returns the pivot families of the latest analysis.
func (a *Analyzer) Pivots(ctx context.Context, symbol string) (model.PivotPoints, error) {
	res, err := a.Analyze(ctx, symbol)
	if err != nil {
		return model.PivotPoints{}, err
	}
	return res.Indicators.Pivots, nil
}

// History lists recorded runs for symbol, newest first.
func (a *Analyzer) History(symbol string, limit int) ([]recorder.AnalysisSummary, error) {
	sym, ok := collector.NormalizeSymbol(symbol)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "symbol %q", symbol)
	}
	return a.recorder.RecentAnalyses(sym, limit)
}
