package strategy

import (
	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
	"StockSentinel/internal/oscillator"
	"StockSentinel/pkg/errors"
)

// snapshot computes every latest-value indicator except the profile.
func (e *Engine) snapshot(cols model.Columns) (model.IndicatorSnapshot, error) {
	ip := e.cfg.Indicators
	closes := cols.Close
	n := len(closes)
	var snap model.IndicatorSnapshot
	var err error

	// EMA200 stays zero when the history cannot seed it.
	snap.EMA21, _ = calculator.CalculateEMA(closes, 21)
	snap.EMA50, _ = calculator.CalculateEMA(closes, 50)
	snap.EMA100, _ = calculator.CalculateEMA(closes, 100)
	snap.EMA200, _ = calculator.CalculateEMA(closes, 200)

	if snap.RSI, err = calculator.CalculateRSI(closes, ip.RSIPeriod); err != nil {
		return snap, errors.Wrap(err, "rsi")
	}
	if snap.ATR, err = calculator.CalculateATR(cols.High, cols.Low, closes, ip.ATRPeriod); err != nil {
		return snap, errors.Wrap(err, "atr")
	}
	if snap.MACD, err = calculator.CalculateMACD(closes, ip.MACDFast, ip.MACDSlow, ip.MACDSignal); err != nil {
		return snap, errors.Wrap(err, "macd")
	}
	if snap.Bollinger, err = calculator.CalculateBollinger(closes, ip.BollingerPeriod, ip.BollingerMultiplier); err != nil {
		return snap, errors.Wrap(err, "bollinger")
	}
	if snap.SuperTrend, err = oscillator.SuperTrend(cols, ip.SuperTrendPeriod, ip.SuperTrendMultiplier); err != nil {
		return snap, err
	}
	if snap.UTBot, err = oscillator.UTBot(cols, oscillator.UTBotParams{
		ATRPeriod:  ip.UTBotPeriod,
		Multiplier: ip.UTBotMultiplier,
		FastEMA:    ip.UTBotFastEMA,
		SlowEMA:    ip.UTBotSlowEMA,
	}); err != nil {
		return snap, err
	}
	if snap.OBV, err = oscillator.OBV(closes, cols.Volume, oscillator.OBVParams{
		Lookback:     ip.OBVLookback,
		TrendWindow:  ip.OBVTrendWindow,
		MomentumSpan: ip.OBVMomentumSpan,
	}); err != nil {
		return snap, err
	}

	if snap.High50, snap.Low50, err = calculator.HighLow(cols.High, cols.Low, ip.RangeWindow); err != nil {
		return snap, errors.Wrap(err, "range")
	}
	if snap.PricePosition, err = calculator.RangePosition(closes[n-1], snap.High50, snap.Low50); err != nil {
		return snap, errors.Wrap(err, "range position")
	}
	snap.Pivots = calculator.CalculatePivots(cols.High[n-1], cols.Low[n-1], closes[n-1])
	return snap, nil
}
