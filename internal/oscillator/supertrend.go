package oscillator

import (
	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
)

// SuperTrend evaluates the basic HL2 ± multiplier·ATR bands on the latest bar
// and on the bar before it, so a trend flip can be reported.
func SuperTrend(cols model.Columns, period int, multiplier float64) (model.SuperTrendState, error) {
	atr, err := calculator.ATRSeries(cols.High, cols.Low, cols.Close, period)
	if err != nil {
		return model.SuperTrendState{}, errors.Wrap(err, "supertrend")
	}
	if len(atr) < 2 {
		return model.SuperTrendState{}, errors.Wrapf(errors.ErrInvalidInput, "supertrend needs %d bars", period+2)
	}

	n := len(cols.Close)
	st := superTrendAt(cols, n-1, atr[len(atr)-1], multiplier)
	prev := superTrendAt(cols, n-2, atr[len(atr)-2], multiplier)
	st.PrevTrend = prev.Trend
	st.Flipped = st.Trend != prev.Trend
	return st, nil
}

func superTrendAt(cols model.Columns, i int, atr, multiplier float64) model.SuperTrendState {
	hl2 := (cols.High[i] + cols.Low[i]) / 2
	st := model.SuperTrendState{
		UpperBand: hl2 + multiplier*atr,
		LowerBand: hl2 - multiplier*atr,
		ATR:       atr,
	}
	if cols.Close[i] <= st.LowerBand {
		st.Trend = model.DirectionShort
		st.Value = st.UpperBand
	} else {
		st.Trend = model.DirectionLong
		st.Value = st.LowerBand
	}
	return st
}
