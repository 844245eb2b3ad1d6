package model

import "time"

// TrendLabel is the overall EMA-stack trend classification.
type TrendLabel string

const (
	TrendStrongBullish TrendLabel = "STRONG_BULLISH"
	TrendBullish       TrendLabel = "BULLISH"
	TrendNeutral       TrendLabel = "NEUTRAL"
	TrendBearish       TrendLabel = "BEARISH"
	TrendStrongBearish TrendLabel = "STRONG_BEARISH"
)

// Signals carries the trend verdict and human-readable messages.
type Signals struct {
	Overall       TrendLabel `json:"overall"`
	TrendStrength int        `json:"trendStrength"`
	Messages      []string   `json:"messages"`
}

// AdvancedLevels exposes the selected zones plus everything they were chosen from.
// Support/Resistance hold the primary zone and, when one qualifies, the secondary.
type AdvancedLevels struct {
	Support         []Zone           `json:"support"`
	Resistance      []Zone           `json:"resistance"`
	SupportZones    []Zone           `json:"supportZones"`
	ResistanceZones []Zone           `json:"resistanceZones"`
	Candidates      []LevelCandidate `json:"candidates"`
}

// Recommendations are advisory price levels only.
type Recommendations struct {
	BuyPrice        float64        `json:"buyPrice"`
	SecondBuyPrice  *float64       `json:"secondBuyPrice,omitempty"`
	BuyReason       string         `json:"buyReason"`
	SellPrice       float64        `json:"sellPrice"`
	SellReason      string         `json:"sellReason"`
	StopLoss        float64        `json:"stopLoss"`
	TakeProfit      float64        `json:"takeProfit"`
	RiskRewardRatio float64        `json:"riskRewardRatio"`
	AdvancedLevels  AdvancedLevels `json:"advancedLevels"`
}

// TechnicalAnalysisResult is the engine's sole output.
type TechnicalAnalysisResult struct {
	Symbol          string            `json:"symbol"`
	AsOf            time.Time         `json:"asOf"`
	Bars            int               `json:"bars"`
	CurrentPrice    float64           `json:"currentPrice"`
	Indicators      IndicatorSnapshot `json:"indicators"`
	Signals         Signals           `json:"signals"`
	Recommendations Recommendations   `json:"recommendations"`
}
