package recorder

import (
	"time"

	"StockSentinel/internal/model"
)

// AnalysisRecord is one completed engine run.
type AnalysisRecord struct {
	Symbol   string
	Source   string // fetcher name
	Duration time.Duration
	Result   *model.TechnicalAnalysisResult
}

// AnalysisSummary is the stored headline of a past run.
type AnalysisSummary struct {
	RunID           string
	Symbol          string
	RecordedAt      time.Time
	AsOf            time.Time
	CurrentPrice    float64
	Trend           model.TrendLabel
	TrendStrength   int
	BuyPrice        float64
	SellPrice       float64
	StopLoss        float64
	TakeProfit      float64
	RiskRewardRatio float64
	Profile         model.ProfileType
	ZoneCount       int
}

// Recorder persists analysis outcomes for later review.
type Recorder interface {
	RecordAnalysis(rec *AnalysisRecord) (string, error)
	RecordSkip(symbol, reason string) error
	RecentAnalyses(symbol string, limit int) ([]AnalysisSummary, error)
	Close() error
}

// NoopRecorder is used when no database path is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (NoopRecorder) RecordAnalysis(_ *AnalysisRecord) (string, error) { return "", nil }
func (NoopRecorder) RecordSkip(_, _ string) error                     { return nil }
func (NoopRecorder) RecentAnalyses(_ string, _ int) ([]AnalysisSummary, error) {
	return nil, nil
}
func (NoopRecorder) Close() error { return nil }
