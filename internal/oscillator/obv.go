package oscillator

import (
	talib "github.com/markcheno/go-talib"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
)

// OBVParams configures the On-Balance-Volume reading.
type OBVParams struct {
	Lookback     int // divergence window, shrinks to the series length
	TrendWindow  int // bars averaged for the RISING/FALLING comparison
	MomentumSpan int
}

// OBV computes On-Balance Volume and compares its direction with price over
// the lookback window. Price up with OBV down is a bearish divergence; the
// mirror is bullish.
func OBV(closes, volumes []float64, p OBVParams) (model.OBVState, error) {
	if len(closes) < 2 || len(closes) != len(volumes) {
		return model.OBVState{}, errors.Wrapf(errors.ErrInvalidInput, "obv needs matching closes and volumes, have %d/%d", len(closes), len(volumes))
	}
	obv := talib.Obv(closes, volumes)
	n := len(obv)
	cur := obv[n-1]

	st := model.OBVState{Value: cur, Trend: model.OBVFalling}
	if cur > calculator.Mean(calculator.Tail(obv, p.TrendWindow)) {
		st.Trend = model.OBVRising
	}

	lookback := p.Lookback
	if lookback <= 0 || lookback > n {
		lookback = n
	}
	st.Lookback = lookback
	priceChange := closes[n-1] - closes[n-lookback]
	obvChange := cur - obv[n-lookback]
	st.PriceDirection = direction(priceChange)
	st.OBVDirection = direction(obvChange)

	switch {
	case priceChange > 0 && obvChange < 0:
		st.Divergence = model.DivergenceBearish
	case priceChange < 0 && obvChange > 0:
		st.Divergence = model.DivergenceBullish
	default:
		st.Divergence = model.DivergenceNone
	}

	if p.MomentumSpan > 0 && n > p.MomentumSpan {
		st.Momentum = (cur - obv[n-p.MomentumSpan]) / float64(p.MomentumSpan)
	}
	if obvChange < 0 {
		obvChange = -obvChange
	}
	st.Strength = obvChange / float64(lookback)
	return st, nil
}

func direction(change float64) string {
	if change > 0 {
		return "UP"
	}
	return "DOWN"
}
