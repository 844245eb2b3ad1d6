package oscillator

import (
	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
)

// UTBotParams configures the UT-Bot trailing stop.
type UTBotParams struct {
	ATRPeriod  int
	Multiplier float64
	FastEMA    int
	SlowEMA    int
}

// UTBot places buy/sell trailing levels at HL2 ∓ ATR·multiplier and confirms
// direction with two EMAs: LONG needs close > fast > slow, SHORT the mirror.
func UTBot(cols model.Columns, p UTBotParams) (model.UTBotState, error) {
	atr, err := calculator.ATRSeries(cols.High, cols.Low, cols.Close, p.ATRPeriod)
	if err != nil {
		return model.UTBotState{}, errors.Wrap(err, "utbot")
	}
	fast, err := calculator.EMASeries(cols.Close, p.FastEMA)
	if err != nil {
		return model.UTBotState{}, errors.Wrap(err, "utbot fast ema")
	}
	slow, err := calculator.EMASeries(cols.Close, p.SlowEMA)
	if err != nil {
		return model.UTBotState{}, errors.Wrap(err, "utbot slow ema")
	}
	if len(atr) < 2 || len(fast) < 2 || len(slow) < 2 {
		return model.UTBotState{}, errors.Wrapf(errors.ErrInvalidInput, "utbot needs two evaluable bars")
	}

	n := len(cols.Close)
	hl2 := (cols.High[n-1] + cols.Low[n-1]) / 2
	a := atr[len(atr)-1]
	st := model.UTBotState{
		BuyLevel:  hl2 - a*p.Multiplier,
		SellLevel: hl2 + a*p.Multiplier,
		ATR:       a,
		EMAFast:   fast[len(fast)-1],
		EMASlow:   slow[len(slow)-1],
	}
	st.Trend = emaStackDirection(cols.Close[n-1], st.EMAFast, st.EMASlow)
	st.PrevTrend = emaStackDirection(cols.Close[n-2], fast[len(fast)-2], slow[len(slow)-2])
	st.Flipped = st.Trend != st.PrevTrend
	return st, nil
}

func emaStackDirection(close, fast, slow float64) model.Direction {
	switch {
	case close > fast && fast > slow:
		return model.DirectionLong
	case close < fast && fast < slow:
		return model.DirectionShort
	default:
		return model.DirectionNeutral
	}
}
