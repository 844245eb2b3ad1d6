package config

import "fmt"

// Engine is the single tunable surface for every heuristic constant the
// analysis pipeline uses. DefaultEngine returns the calibrated values.
type Engine struct {
	MinBars int `yaml:"min_bars"`

	Indicators IndicatorParams `yaml:"indicators"`
	Profile    ProfileParams   `yaml:"profile"`
	Levels     LevelParams     `yaml:"levels"`
	Zones      ZoneParams      `yaml:"zones"`
	Recommend  RecommendParams `yaml:"recommend"`
}

// IndicatorParams are the periods and multipliers of the indicator library and oscillators.
type IndicatorParams struct {
	RSIPeriod            int     `yaml:"rsi_period"`
	ATRPeriod            int     `yaml:"atr_period"`
	MACDFast             int     `yaml:"macd_fast"`
	MACDSlow             int     `yaml:"macd_slow"`
	MACDSignal           int     `yaml:"macd_signal"`
	BollingerPeriod      int     `yaml:"bollinger_period"`
	BollingerMultiplier  float64 `yaml:"bollinger_multiplier"`
	SuperTrendPeriod     int     `yaml:"supertrend_period"`
	SuperTrendMultiplier float64 `yaml:"supertrend_multiplier"`
	UTBotPeriod          int     `yaml:"utbot_period"`
	UTBotMultiplier      float64 `yaml:"utbot_multiplier"`
	UTBotFastEMA         int     `yaml:"utbot_fast_ema"`
	UTBotSlowEMA         int     `yaml:"utbot_slow_ema"`
	OBVLookback          int     `yaml:"obv_lookback"`
	OBVTrendWindow       int     `yaml:"obv_trend_window"`
	OBVMomentumSpan      int     `yaml:"obv_momentum_span"`
	RangeWindow          int     `yaml:"range_window"`
	CrossLookback        int     `yaml:"cross_lookback"`
}

// ProfileParams are the decision-table thresholds of the stock profile classifier.
type ProfileParams struct {
	VolatilityWindow    int     `yaml:"volatility_window"`
	StableVolatility    float64 `yaml:"stable_volatility"`
	HighVolatility      float64 `yaml:"high_volatility"`
	MomentumVolumeTrend float64 `yaml:"momentum_volume_trend"`
	GrowthTrendStrength float64 `yaml:"growth_trend_strength"`
	ShortVolumeWindow   int     `yaml:"short_volume_window"`
	LongVolumeWindow    int     `yaml:"long_volume_window"`
}

// LevelParams drive the six candidate sources.
type LevelParams struct {
	MADistanceBands   []float64 `yaml:"ma_distance_bands"`   // upper bounds, ascending
	MADistanceFactors []float64 `yaml:"ma_distance_factors"` // one more entry than bands
	MADefaultWeight   float64   `yaml:"ma_default_weight"`

	SwingStrengthDefault  int     `yaml:"swing_strength_default"`
	SwingStrengthMomentum int     `yaml:"swing_strength_momentum"`
	SwingStrengthVolatile int     `yaml:"swing_strength_volatile"`
	TouchTolerance        float64 `yaml:"touch_tolerance"`
	TouchWindow           int     `yaml:"touch_window"`
	TouchCap              int     `yaml:"touch_cap"`

	VolumePeriodFraction  float64 `yaml:"volume_period_fraction"`
	VolumePeriodMax       int     `yaml:"volume_period_max"`
	VolumeBuckets         int     `yaml:"volume_buckets"`
	VolumeBucketsVolatile int     `yaml:"volume_buckets_volatile"`
	VolumeVolatileAbove   float64 `yaml:"volume_volatile_above"`
	VolumeTopNodes        int     `yaml:"volume_top_nodes"`
	VolumeMinStepFraction float64 `yaml:"volume_min_step_fraction"`
	VolumeStrengthFactor  float64 `yaml:"volume_strength_factor"`

	FibPeriodFraction float64 `yaml:"fib_period_fraction"`
	FibPeriodMax      int     `yaml:"fib_period_max"`

	PivotBaseStrength float64 `yaml:"pivot_base_strength"`
	PivotRankDecay    float64 `yaml:"pivot_rank_decay"`

	PsychoStrength float64 `yaml:"psycho_strength"`
	PsychoCount    int     `yaml:"psycho_count"`
}

// ZoneParams drive clustering, scoring and actionable selection.
type ZoneParams struct {
	ATRRadiusFactor  float64 `yaml:"atr_radius_factor"`
	PriceRadiusFloor float64 `yaml:"price_radius_floor"`

	WeightDiversity  float64 `yaml:"weight_diversity"`
	WeightMA         float64 `yaml:"weight_ma"`
	WeightTouches    float64 `yaml:"weight_touches"`
	TouchesCap       float64 `yaml:"touches_cap"`
	WeightVolume     float64 `yaml:"weight_volume"`
	WeightFib        float64 `yaml:"weight_fib"`
	WeightPsycho     float64 `yaml:"weight_psycho"`
	WeightTrend      float64 `yaml:"weight_trend"`
	ProximityNumer   float64 `yaml:"proximity_numerator"`
	ProximityOffset  float64 `yaml:"proximity_offset"`
	WidthPenaltyFrom float64 `yaml:"width_penalty_from"`
	WidthPenalty     float64 `yaml:"width_penalty"`

	ActionableWindow         float64 `yaml:"actionable_window"`
	ActionableWindowVolatile float64 `yaml:"actionable_window_volatile"`
	VolatileAbove            float64 `yaml:"volatile_above"`
	TieBand                  float64 `yaml:"tie_band"`

	GapATRFactor     float64 `yaml:"gap_atr_factor"`
	SupportGapPct    float64 `yaml:"support_gap_pct"`
	SupportGapAbs    float64 `yaml:"support_gap_abs"`
	ResistanceGapPct float64 `yaml:"resistance_gap_pct"`
	ResistanceGapAbs float64 `yaml:"resistance_gap_abs"`
}

// RecommendParams drive the recommendation synthesizer.
type RecommendParams struct {
	SecondBuyMinGapAbs     float64 `yaml:"second_buy_min_gap_abs"`
	SecondBuyMinGapPct     float64 `yaml:"second_buy_min_gap_pct"`
	StopLossEMAFactor      float64 `yaml:"stop_loss_ema_factor"`
	StopLossBuyFactor      float64 `yaml:"stop_loss_buy_factor"`
	TakeProfitFactor       float64 `yaml:"take_profit_factor"`
	SellFallbackFactor     float64 `yaml:"sell_fallback_factor"`
	OverboughtRSI          float64 `yaml:"overbought_rsi"`
	ExpensiveAboveEMA200   float64 `yaml:"expensive_above_ema200"`
	OpportunityBelowEMA200 float64 `yaml:"opportunity_below_ema200"`
}

// DefaultEngine returns the calibrated heuristic constants.
func DefaultEngine() Engine {
	return Engine{
		MinBars: 200,
		Indicators: IndicatorParams{
			RSIPeriod:            14,
			ATRPeriod:            14,
			MACDFast:             12,
			MACDSlow:             26,
			MACDSignal:           9,
			BollingerPeriod:      20,
			BollingerMultiplier:  2,
			SuperTrendPeriod:     10,
			SuperTrendMultiplier: 2.5,
			UTBotPeriod:          10,
			UTBotMultiplier:      3.5,
			UTBotFastEMA:         21,
			UTBotSlowEMA:         50,
			OBVLookback:          50,
			OBVTrendWindow:       20,
			OBVMomentumSpan:      10,
			RangeWindow:          50,
			CrossLookback:        10,
		},
		Profile: ProfileParams{
			VolatilityWindow:    20,
			StableVolatility:    0.015,
			HighVolatility:      0.04,
			MomentumVolumeTrend: 1.2,
			GrowthTrendStrength: 0.15,
			ShortVolumeWindow:   5,
			LongVolumeWindow:    20,
		},
		Levels: LevelParams{
			MADistanceBands:   []float64{0.02, 0.05, 0.10},
			MADistanceFactors: []float64{1.0, 0.9, 0.7, 0.5},
			MADefaultWeight:   1.0,

			SwingStrengthDefault:  5,
			SwingStrengthMomentum: 4,
			SwingStrengthVolatile: 3,
			TouchTolerance:        0.005,
			TouchWindow:           50,
			TouchCap:              10,

			VolumePeriodFraction:  0.7,
			VolumePeriodMax:       50,
			VolumeBuckets:         20,
			VolumeBucketsVolatile: 15,
			VolumeVolatileAbove:   0.05,
			VolumeTopNodes:        5,
			VolumeMinStepFraction: 0.001,
			VolumeStrengthFactor:  2,

			FibPeriodFraction: 0.6,
			FibPeriodMax:      60,

			PivotBaseStrength: 1.5,
			PivotRankDecay:    0.3,

			PsychoStrength: 2.0,
			PsychoCount:    3,
		},
		Zones: ZoneParams{
			ATRRadiusFactor:  0.35,
			PriceRadiusFloor: 0.006,

			WeightDiversity:  4,
			WeightMA:         3,
			WeightTouches:    2,
			TouchesCap:       12,
			WeightVolume:     5,
			WeightFib:        3,
			WeightPsycho:     2,
			WeightTrend:      1.5,
			ProximityNumer:   6,
			ProximityOffset:  0.005,
			WidthPenaltyFrom: 0.01,
			WidthPenalty:     50,

			ActionableWindow:         0.15,
			ActionableWindowVolatile: 0.20,
			VolatileAbove:            0.04,
			TieBand:                  0.007,

			GapATRFactor:     0.8,
			SupportGapPct:    0.03,
			SupportGapAbs:    3.0,
			ResistanceGapPct: 0.10,
			ResistanceGapAbs: 10.0,
		},
		Recommend: RecommendParams{
			SecondBuyMinGapAbs:     2.5,
			SecondBuyMinGapPct:     0.025,
			StopLossEMAFactor:      0.90,
			StopLossBuyFactor:      0.85,
			TakeProfitFactor:       1.05,
			SellFallbackFactor:     1.15,
			OverboughtRSI:          70,
			ExpensiveAboveEMA200:   0.15,
			OpportunityBelowEMA200: 0.10,
		},
	}
}

// Validate rejects settings the pipeline cannot run with.
func (e *Engine) Validate() error {
	ind := e.Indicators
	if e.MinBars < ind.MACDSlow+ind.MACDSignal+10 {
		return fmt.Errorf("engine.min_bars must be at least %d for MACD", ind.MACDSlow+ind.MACDSignal+10)
	}
	if ind.MACDFast >= ind.MACDSlow {
		return fmt.Errorf("engine.indicators.macd_fast must be below macd_slow")
	}
	for name, p := range map[string]int{
		"rsi_period":        ind.RSIPeriod,
		"atr_period":        ind.ATRPeriod,
		"bollinger_period":  ind.BollingerPeriod,
		"supertrend_period": ind.SuperTrendPeriod,
		"utbot_period":      ind.UTBotPeriod,
		"range_window":      ind.RangeWindow,
	} {
		if p <= 0 {
			return fmt.Errorf("engine.indicators.%s must be positive", name)
		}
		if p >= e.MinBars {
			return fmt.Errorf("engine.indicators.%s must be below min_bars", name)
		}
	}
	if len(e.Levels.MADistanceFactors) != len(e.Levels.MADistanceBands)+1 {
		return fmt.Errorf("engine.levels.ma_distance_factors needs one more entry than ma_distance_bands")
	}
	if e.Zones.ActionableWindow <= 0 || e.Zones.ActionableWindowVolatile <= 0 {
		return fmt.Errorf("engine.zones actionable windows must be positive")
	}
	if e.Levels.VolumeBuckets <= 0 || e.Levels.VolumeBucketsVolatile <= 0 {
		return fmt.Errorf("engine.levels volume buckets must be positive")
	}
	return nil
}
