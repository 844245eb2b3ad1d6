package calculator

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// Mean of the values; zero for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the population standard deviation of the values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	out := talib.StdDev(values, len(values), 1)
	return finite(out[len(out)-1])
}

// Volatility is stddev/mean of the last `period` values (coefficient of variation).
// Fewer values shrink the window instead of failing.
func Volatility(values []float64, period int) float64 {
	if period > len(values) {
		period = len(values)
	}
	if period < 2 {
		return 0
	}
	window := values[len(values)-period:]
	mean := Mean(window)
	if mean == 0 {
		return 0
	}
	return StdDev(window) / mean
}

// Tail returns the last n values, or all of them when there are fewer.
func Tail(values []float64, n int) []float64 {
	if n >= len(values) || n < 0 {
		return values
	}
	return values[len(values)-n:]
}

// finite maps NaN/Inf library output to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
