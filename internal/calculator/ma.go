package calculator

import (
	talib "github.com/markcheno/go-talib"

	"StockSentinel/pkg/errors"
)

// CalculateSMA computes the simple moving average of the last `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "SMA period must be positive, got %d", period)
	}
	if len(prices) < period {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "SMA(%d) needs %d prices, have %d", period, period, len(prices))
	}
	out := talib.Sma(prices[len(prices)-period:], period)
	return out[period-1], nil
}

// EMASeries returns the exponential moving average for every index from
// period-1 onward, seeded with the simple average of the first `period` values.
// out[0] corresponds to prices[period-1].
func EMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "EMA period must be positive, got %d", period)
	}
	if len(prices) < period {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "EMA(%d) needs %d prices, have %d", period, period, len(prices))
	}
	full := talib.Ema(prices, period)
	return full[period-1:], nil
}

// CalculateEMA returns the latest EMA value.
func CalculateEMA(prices []float64, period int) (float64, error) {
	series, err := EMASeries(prices, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}
