package calculator

import (
	talib "github.com/markcheno/go-talib"

	"StockSentinel/pkg/errors"
)

// TrueRange returns max(high-low, |high-prevClose|, |low-prevClose|) per bar.
// Index 0 has no previous close and is always zero.
func TrueRange(highs, lows, closes []float64) []float64 {
	if len(closes) == 0 {
		return nil
	}
	return talib.TRange(highs, lows, closes)
}

// ATRSeries returns Wilder's average true range for every bar from index
// `period` onward. The first value is the plain mean of the first `period`
// true ranges; out[0] corresponds to bar `period`.
func ATRSeries(highs, lows, closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "ATR period must be positive, got %d", period)
	}
	if len(highs) != len(closes) || len(lows) != len(closes) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "ATR inputs differ in length")
	}
	if len(closes) < period+1 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "ATR(%d) needs %d bars, have %d", period, period+1, len(closes))
	}

	return wilder(TrueRange(highs, lows, closes), period), nil
}

// CalculateATR returns the latest Wilder ATR.
func CalculateATR(highs, lows, closes []float64, period int) (float64, error) {
	series, err := ATRSeries(highs, lows, closes, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}
