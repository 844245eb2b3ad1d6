package calculator

import (
	"math"

	"StockSentinel/pkg/errors"
)

// HighLow scans the most recent `window` highs and lows and returns the extremes.
func HighLow(highs, lows []float64, window int) (high, low float64, err error) {
	if len(highs) == 0 || len(highs) != len(lows) {
		return 0, 0, errors.Wrapf(errors.ErrInvalidInput, "high/low inputs empty or mismatched")
	}
	n := len(highs)
	start := n - window
	if start < 0 || window <= 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if highs[i] > high {
			high = highs[i]
		}
		if lows[i] < low {
			low = lows[i]
		}
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high] as 0-100.
// A zero-width range is reported as the midpoint.
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 50, nil
	}
	if high < low {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "high %.4f below low %.4f", high, low)
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos * 100, nil
}
