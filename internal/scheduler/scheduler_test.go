package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/config"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/model"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/strategy"
	"StockSentinel/pkg/errors"
)

type captureNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (c *captureNotifier) Send(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, text)
	return nil
}

type countingRecorder struct {
	recorder.NoopRecorder
	mu       sync.Mutex
	analyses []string
	skips    []string
}

func (r *countingRecorder) RecordAnalysis(rec *recorder.AnalysisRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, rec.Symbol+"@"+rec.Source)
	return "run", nil
}

func (r *countingRecorder) RecordSkip(symbol, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skips = append(r.skips, symbol)
	return nil
}

type fixture struct {
	analyzer *Analyzer
	metrics  *metrics.Metrics
	rec      *countingRecorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	short := make([]model.OHLCV, 20)
	for i := range short {
		short[i] = model.OHLCV{Time: end.AddDate(0, 0, i-20), Open: 10, High: 11, Low: 9, Close: 10, Volume: 100}
	}
	fetcher := &collector.MockFetcher{
		Price: 100, Drift: 0.001, End: end,
		DailyData: map[string][]model.OHLCV{"NEWCO": short},
	}

	m := metrics.New(prometheus.NewRegistry())
	rec := &countingRecorder{}
	a := NewAnalyzer(
		collector.NewCollector(fetcher, 300, nil),
		strategy.NewEngine(config.DefaultEngine(), nil),
		cache.New[*model.TechnicalAnalysisResult](time.Minute),
		rec, m, nil,
	)
	return fixture{analyzer: a, metrics: m, rec: rec}
}

func TestAnalyzerCachesResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.analyzer.Analyze(ctx, "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", first.Symbol)

	second, err := f.analyzer.Analyze(ctx, "AAPL")
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Analyses.WithLabelValues(metrics.OutcomeOK)))
	assert.Equal(t, []string{"AAPL@mock"}, f.rec.analyses)

	pivots, err := f.analyzer.Pivots(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, first.Indicators.Pivots, pivots)
}

func TestAnalyzerInsufficientHistory(t *testing.T) {
	f := newFixture(t)

	res, err := f.analyzer.Analyze(context.Background(), "NEWCO")
	assert.Nil(t, res)
	require.True(t, errors.Is(err, errors.ErrInsufficientHistory))

	var short *strategy.InsufficientHistoryError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, 20, short.Have)
	assert.Equal(t, 200, short.Need)

	assert.Equal(t, []string{"NEWCO"}, f.rec.skips)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Analyses.WithLabelValues(metrics.OutcomeInsufficient)))
}

func TestAnalyzerRejectsBadSymbol(t *testing.T) {
	f := newFixture(t)
	_, err := f.analyzer.Analyze(context.Background(), "not a symbol")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = f.analyzer.History("$$$", 5)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestRunBatch(t *testing.T) {
	f := newFixture(t)
	n := &captureNotifier{}
	s := NewScheduler(context.Background(), f.analyzer, n, f.metrics, []string{"AAPL", "NEWCO", "MSFT", "SPY"}, 2, nil)

	err := s.RunBatch(context.Background())
	require.Error(t, err)

	var merr *errors.MultiError
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 1)
	assert.True(t, errors.Is(merr.Errors[0], errors.ErrInsufficientHistory))

	assert.Equal(t, 4.0, testutil.ToFloat64(f.metrics.WatchlistSize))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.Analyses.WithLabelValues(metrics.OutcomeOK)))
	assert.ElementsMatch(t, []string{"AAPL@mock", "MSFT@mock", "SPY@mock"}, f.rec.analyses)

	require.Len(t, n.msgs, 1)
	assert.Contains(t, n.msgs[0], "3 analysed, 1 failed")
	assert.Contains(t, n.msgs[0], "NEWCO")

	// Batch results warm the cache.
	_, err = f.analyzer.Analyze(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits.WithLabelValues("hit")))
}

func TestRunBatchCancelled(t *testing.T) {
	f := newFixture(t)
	n := &captureNotifier{}
	s := NewScheduler(context.Background(), f.analyzer, n, f.metrics, []string{"AAPL", "MSFT"}, 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.RunBatch(ctx)

	var merr *errors.MultiError
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.Empty(t, f.rec.analyses)
}

func TestRunBatchWithoutMetrics(t *testing.T) {
	f := newFixture(t)
	a := NewAnalyzer(f.analyzer.collector, f.analyzer.engine, cache.New[*model.TechnicalAnalysisResult](time.Minute), nil, nil, nil)
	n := &captureNotifier{}
	s := NewScheduler(context.Background(), a, n, nil, []string{"AAPL", "NEWCO"}, 2, nil)

	var err error
	require.NotPanics(t, func() { err = s.RunBatch(context.Background()) })
	var merr *errors.MultiError
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 1)
	require.Len(t, n.msgs, 1)

	require.NotPanics(t, func() { _, err = a.Analyze(context.Background(), "AAPL") })
	assert.NoError(t, err)
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	s := NewScheduler(context.Background(), f.analyzer, nil, f.metrics, nil, 0, nil)

	assert.NoError(t, s.Register("0 30 22 * * 1-5"))
	assert.Error(t, s.Register("not a cron"))

	s.Start()
	s.Stop()
}
