// Package profile assigns a behavioural profile to an instrument from its
// volatility, 50-day trend strength and volume trend.
package profile

import (
	"StockSentinel/internal/calculator"
	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

type settings struct {
	periods  []int
	lookback int
	note     string
}

var table = map[model.ProfileType]settings{
	model.ProfileStableUptrend: {
		periods: []int{21, 50, 200}, lookback: 200,
		note: "Stable uptrend: long averages (MA50/MA200) carry the most weight",
	},
	model.ProfileStableDowntrend: {
		periods: []int{50, 100, 200}, lookback: 200,
		note: "Stable downtrend: watch MA100/MA200 as overhead resistance",
	},
	model.ProfileHighMomentum: {
		periods: []int{21, 50}, lookback: 60,
		note: "High momentum: recent swings and MA21 dominate",
	},
	model.ProfileHighVolatility: {
		periods: []int{21}, lookback: 40,
		note: "High volatility: only the most recent structure is reliable",
	},
	model.ProfileStrongGrowth: {
		periods: []int{21, 50, 100}, lookback: 100,
		note: "Strong growth: pullbacks to MA21/MA50 are the key entries",
	},
	model.ProfileMixed: {
		periods: []int{21, 50, 100, 200}, lookback: 100,
		note: "Mixed behaviour: all averages considered",
	},
}

// Classify computes the fingerprint and applies the decision table; the
// first matching row wins.
func Classify(closes, volumes []float64, p config.ProfileParams) model.StockProfile {
	if len(closes) == 0 {
		return build(model.ProfileMixed, model.StockProfile{})
	}
	current := closes[len(closes)-1]

	fp := model.StockProfile{
		Volatility:  calculator.Volatility(closes, p.VolatilityWindow),
		SMA50:       smaOrMean(closes, 50),
		VolumeTrend: volumeTrend(volumes, p.ShortVolumeWindow, p.LongVolumeWindow),
	}
	fp.SMA200 = fp.SMA50
	if len(closes) >= 200 {
		fp.SMA200 = smaOrMean(closes, 200)
	}
	if fp.SMA50 != 0 {
		fp.TrendStrength = (current - fp.SMA50) / fp.SMA50
	}

	var t model.ProfileType
	switch {
	case fp.Volatility < p.StableVolatility && current > fp.SMA200:
		t = model.ProfileStableUptrend
	case fp.Volatility < p.StableVolatility && current < fp.SMA200:
		t = model.ProfileStableDowntrend
	case fp.Volatility > p.HighVolatility && fp.VolumeTrend > p.MomentumVolumeTrend:
		t = model.ProfileHighMomentum
	case fp.Volatility > p.HighVolatility:
		t = model.ProfileHighVolatility
	case fp.TrendStrength > p.GrowthTrendStrength:
		t = model.ProfileStrongGrowth
	default:
		t = model.ProfileMixed
	}
	return build(t, fp)
}

func build(t model.ProfileType, fp model.StockProfile) model.StockProfile {
	s := table[t]
	fp.Type = t
	fp.RecommendedPeriods = append([]int(nil), s.periods...)
	fp.LookbackDays = s.lookback
	fp.FocusNote = s.note
	return fp
}

// MAWeight is how much an MA of the given period counts for a profile.
// Unlisted periods get fallback.
func MAWeight(t model.ProfileType, period int, fallback float64) float64 {
	switch t {
	case model.ProfileStableUptrend, model.ProfileStableDowntrend:
		switch period {
		case 50:
			return 5.0
		case 200:
			return 4.5
		case 21:
			return 3.0
		}
	case model.ProfileHighMomentum, model.ProfileHighVolatility:
		switch period {
		case 21:
			return 5.0
		case 50:
			return 3.5
		default:
			return 1.5
		}
	case model.ProfileStrongGrowth:
		switch period {
		case 21:
			return 5.0
		case 50:
			return 4.0
		case 100:
			return 3.0
		}
	case model.ProfileMixed:
		switch period {
		case 21:
			return 3.5
		case 50:
			return 3.0
		case 100:
			return 2.5
		case 200:
			return 2.0
		}
	}
	return fallback
}

func smaOrMean(values []float64, period int) float64 {
	v, err := calculator.CalculateSMA(values, period)
	if err != nil {
		return calculator.Mean(values)
	}
	return v
}

func volumeTrend(volumes []float64, short, long int) float64 {
	longAvg := calculator.Mean(calculator.Tail(volumes, long))
	if longAvg == 0 {
		return 1
	}
	return calculator.Mean(calculator.Tail(volumes, short)) / longAvg
}
