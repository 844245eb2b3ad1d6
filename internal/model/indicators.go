package model

// Direction is the trend state reported by SuperTrend and UT-Bot.
type Direction string

const (
	DirectionLong    Direction = "LONG"
	DirectionShort   Direction = "SHORT"
	DirectionNeutral Direction = "NEUTRAL"
)

// Crossover marks a MACD/signal line cross on the latest bar.
type Crossover string

const (
	CrossoverBullish Crossover = "BULLISH"
	CrossoverBearish Crossover = "BEARISH"
	CrossoverNone    Crossover = "NONE"
)

// HistogramTrend classifies MACD histogram momentum.
type HistogramTrend string

const (
	HistogramStrongBullish    HistogramTrend = "STRONG_BULLISH"
	HistogramWeakeningBullish HistogramTrend = "WEAKENING_BULLISH"
	HistogramStrongBearish    HistogramTrend = "STRONG_BEARISH"
	HistogramWeakeningBearish HistogramTrend = "WEAKENING_BEARISH"
	HistogramNeutral          HistogramTrend = "NEUTRAL"
)

// MACDState is the latest MACD reading plus the previous bar's values.
type MACDState struct {
	MACD           float64        `json:"macd"`
	Signal         float64        `json:"signal"`
	Histogram      float64        `json:"histogram"`
	PrevMACD       float64        `json:"prevMacd"`
	PrevSignal     float64        `json:"prevSignal"`
	PrevHistogram  float64        `json:"prevHistogram"`
	Trend          string         `json:"trend"` // BULLISH or BEARISH by histogram sign
	Momentum       float64        `json:"momentum"`
	Crossover      Crossover      `json:"crossover"`
	HistogramTrend HistogramTrend `json:"histogramTrend"`
}

// BollingerBands holds the latest band values.
type BollingerBands struct {
	Upper     float64 `json:"upper"`
	Middle    float64 `json:"middle"`
	Lower     float64 `json:"lower"`
	Bandwidth float64 `json:"bandwidth"` // percent of middle
}

// SuperTrendState is the SuperTrend reading for the latest bar.
type SuperTrendState struct {
	Value     float64   `json:"value"`
	UpperBand float64   `json:"upperBand"`
	LowerBand float64   `json:"lowerBand"`
	ATR       float64   `json:"atr"`
	Trend     Direction `json:"trend"`
	PrevTrend Direction `json:"prevTrend"`
	Flipped   bool      `json:"flipped"`
}

// UTBotState is the UT-Bot trailing-stop reading for the latest bar.
type UTBotState struct {
	BuyLevel  float64   `json:"buyLevel"`
	SellLevel float64   `json:"sellLevel"`
	ATR       float64   `json:"atr"`
	EMAFast   float64   `json:"emaFast"`
	EMASlow   float64   `json:"emaSlow"`
	Trend     Direction `json:"trend"`
	PrevTrend Direction `json:"prevTrend"`
	Flipped   bool      `json:"flipped"`
}

// OBVTrend compares current OBV against its recent mean.
type OBVTrend string

const (
	OBVRising  OBVTrend = "RISING"
	OBVFalling OBVTrend = "FALLING"
)

// Divergence between price direction and OBV direction.
type Divergence string

const (
	DivergenceBullish Divergence = "BULLISH"
	DivergenceBearish Divergence = "BEARISH"
	DivergenceNone    Divergence = "NONE"
)

// OBVState is the On-Balance-Volume reading with divergence detection.
type OBVState struct {
	Value          float64    `json:"value"`
	Trend          OBVTrend   `json:"trend"`
	Divergence     Divergence `json:"divergence"`
	Momentum       float64    `json:"momentum"`
	Strength       float64    `json:"strength"`
	PriceDirection string     `json:"priceDirection"` // UP or DOWN over the lookback
	OBVDirection   string     `json:"obvDirection"`
	Lookback       int        `json:"lookback"`
}

// FibonacciLevels are retracements measured down from High plus extensions above it.
type FibonacciLevels struct {
	High    float64 `json:"high"`
	Low     float64 `json:"low"`
	L0      float64 `json:"level0"`
	L236    float64 `json:"level236"`
	L382    float64 `json:"level382"`
	L500    float64 `json:"level500"`
	L618    float64 `json:"level618"`
	L786    float64 `json:"level786"`
	L1000   float64 `json:"level1000"`
	Ext1272 float64 `json:"ext1272"`
	Ext1618 float64 `json:"ext1618"`
	Ext2618 float64 `json:"ext2618"`
}

// PivotSet is one pivot family. R4/S4 are only filled for Camarilla.
type PivotSet struct {
	Pivot float64 `json:"pivot"`
	R1    float64 `json:"r1"`
	R2    float64 `json:"r2"`
	R3    float64 `json:"r3"`
	R4    float64 `json:"r4,omitempty"`
	S1    float64 `json:"s1"`
	S2    float64 `json:"s2"`
	S3    float64 `json:"s3"`
	S4    float64 `json:"s4,omitempty"`
}

// PivotPoints groups the three pivot families.
type PivotPoints struct {
	Standard  PivotSet `json:"standard"`
	Fibonacci PivotSet `json:"fibonacci"`
	Camarilla PivotSet `json:"camarilla"`
}

// IndicatorSnapshot holds the latest values of every indicator and oscillator.
// It is rebuilt from scratch on every analysis.
type IndicatorSnapshot struct {
	EMA21         float64         `json:"ema21"`
	EMA50         float64         `json:"ema50"`
	EMA100        float64         `json:"ema100"`
	EMA200        float64         `json:"ema200"` // zero when history is too short
	RSI           float64         `json:"rsi"`
	ATR           float64         `json:"atr"`
	MACD          MACDState       `json:"macd"`
	Bollinger     BollingerBands  `json:"bollingerBands"`
	SuperTrend    SuperTrendState `json:"superTrend"`
	UTBot         UTBotState      `json:"utBot"`
	OBV           OBVState        `json:"obv"`
	High50        float64         `json:"high50"`
	Low50         float64         `json:"low50"`
	PricePosition float64         `json:"pricePosition"` // 0-100 within the 50-day range
	Pivots        PivotPoints     `json:"pivots"`
	Profile       StockProfile    `json:"profile"`
}
