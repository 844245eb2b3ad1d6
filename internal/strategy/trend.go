package strategy

import "StockSentinel/internal/model"

// classifyTrend reads the EMA stack. The full 50/100/200 ordering is the
// strong variant; 50 over 200 alone is the plain one.
func classifyTrend(price float64, s model.IndicatorSnapshot) (model.TrendLabel, int) {
	e50, e100, e200 := s.EMA50, s.EMA100, s.EMA200
	if e200 == 0 {
		return model.TrendNeutral, 0
	}
	switch {
	case price > e50 && e50 > e100 && e100 > e200:
		return model.TrendStrongBullish, 3
	case price > e50 && e50 > e200:
		return model.TrendBullish, 2
	case price < e50 && e50 < e100 && e100 < e200:
		return model.TrendStrongBearish, -3
	case price < e50 && e50 < e200:
		return model.TrendBearish, -2
	default:
		return model.TrendNeutral, 0
	}
}
