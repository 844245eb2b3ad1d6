package calculator

import (
	talib "github.com/markcheno/go-talib"

	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
)

// CalculateBollinger returns SMA ± multiplier·stddev over the trailing window,
// using the population standard deviation.
func CalculateBollinger(prices []float64, period int, multiplier float64) (model.BollingerBands, error) {
	if period <= 1 {
		return model.BollingerBands{}, errors.Wrapf(errors.ErrInvalidInput, "Bollinger period must exceed 1, got %d", period)
	}
	if len(prices) < period {
		return model.BollingerBands{}, errors.Wrapf(errors.ErrInvalidInput, "Bollinger(%d) needs %d prices, have %d", period, period, len(prices))
	}

	window := prices[len(prices)-period:]
	upper, middle, lower := talib.BBands(window, period, multiplier, multiplier, talib.SMA)
	last := period - 1
	bb := model.BollingerBands{
		Upper:  finite(upper[last]),
		Middle: finite(middle[last]),
		Lower:  finite(lower[last]),
	}
	if bb.Middle != 0 {
		bb.Bandwidth = (bb.Upper - bb.Lower) / bb.Middle * 100
	}
	return bb, nil
}
