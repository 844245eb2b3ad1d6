package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func sampleResult() *model.TechnicalAnalysisResult {
	second := 88.0
	return &model.TechnicalAnalysisResult{
		Symbol:       "AAPL",
		AsOf:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Bars:         250,
		CurrentPrice: 100,
		Indicators: model.IndicatorSnapshot{
			RSI: 55, ATR: 2, EMA200: 95,
			Profile: model.StockProfile{Type: model.ProfileStableUptrend},
		},
		Signals: model.Signals{Overall: model.TrendBullish, TrendStrength: 2},
		Recommendations: model.Recommendations{
			BuyPrice:        95,
			SecondBuyPrice:  &second,
			SellPrice:       110,
			StopLoss:        85.5,
			TakeProfit:      115.5,
			RiskRewardRatio: 1.57,
			AdvancedLevels: model.AdvancedLevels{
				Support: []model.Zone{
					{Side: model.SideSupport, Center: 95, Min: 94, Max: 96, Score: 120,
						Types: []model.Category{model.CategoryMA, model.CategorySwing}},
					{Side: model.SideSupport, Center: 88, Min: 87.5, Max: 88.5, Score: 80},
				},
				Resistance: []model.Zone{
					{Side: model.SideResistance, Center: 110, Min: 109, Max: 111, Score: 90},
				},
			},
		},
	}
}

func TestRecordAnalysisRoundTrip(t *testing.T) {
	r := newTestRecorder(t)

	runID, err := r.RecordAnalysis(&AnalysisRecord{
		Symbol: "AAPL", Source: "mock", Duration: 12 * time.Millisecond, Result: sampleResult(),
	})
	require.NoError(t, err)
	assert.Len(t, runID, 36)

	got, err := r.RecentAnalyses("AAPL", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, runID, s.RunID)
	assert.Equal(t, model.TrendBullish, s.Trend)
	assert.Equal(t, 2, s.TrendStrength)
	assert.Equal(t, 95.0, s.BuyPrice)
	assert.Equal(t, 110.0, s.SellPrice)
	assert.Equal(t, model.ProfileStableUptrend, s.Profile)
	assert.Equal(t, 3, s.ZoneCount)
	assert.True(t, s.AsOf.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRecentAnalysesOrderAndLimit(t *testing.T) {
	r := newTestRecorder(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		r.now = func() time.Time { return ts }
		id, err := r.RecordAnalysis(&AnalysisRecord{Symbol: "MSFT", Result: sampleResult()})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	got, err := r.RecentAnalyses("MSFT", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].RunID)
	assert.Equal(t, ids[1], got[1].RunID)

	none, err := r.RecentAnalyses("AAPL", 2)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordSkipAndNilRecord(t *testing.T) {
	r := newTestRecorder(t)
	require.NoError(t, r.RecordSkip("NEWCO", "insufficient history: have 20, need 200"))

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM skipped_runs WHERE symbol = ?`, "NEWCO").Scan(&n))
	assert.Equal(t, 1, n)

	_, err := r.RecordAnalysis(nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	r1, err := NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	require.NoError(t, r1.Close())

	r2, err := NewSQLiteRecorder(path, nil)
	require.NoError(t, err)
	require.NoError(t, r2.Close())
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	id, err := r.RecordAnalysis(&AnalysisRecord{})
	assert.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, r.RecordSkip("X", "y"))
	got, err := r.RecentAnalyses("X", 1)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, r.Close())
}
