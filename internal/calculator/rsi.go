package calculator

import "StockSentinel/pkg/errors"

// wilder smooths values[1:] with Wilder's recurrence. The seed is the mean of
// values[1..period]; out[0] is that seed and out[k] belongs to index period+k.
// values[0] is ignored because both RSI and ATR have no input for the first bar.
func wilder(values []float64, period int) []float64 {
	avg := 0.0
	for _, v := range values[1 : period+1] {
		avg += v
	}
	avg /= float64(period)

	out := make([]float64, 0, len(values)-period)
	out = append(out, avg)
	for _, v := range values[period+1:] {
		avg = (avg*float64(period-1) + v) / float64(period)
		out = append(out, avg)
	}
	return out
}

// CalculateRSI returns the Wilder RSI of the last close. It needs period+1
// closes. With no movement at all the reading is neutral (50); with gains
// but no losses it is 100.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "RSI period must be positive, got %d", period)
	}
	if len(closes) < period+1 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "RSI(%d) needs %d closes, have %d", period, period+1, len(closes))
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		if d := closes[i] - closes[i-1]; d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}

	g := wilder(gains, period)
	l := wilder(losses, period)
	up, down := g[len(g)-1], l[len(l)-1]

	switch {
	case down == 0 && up == 0:
		return 50, nil
	case down == 0:
		return 100, nil
	}
	return 100 - 100/(1+up/down), nil
}
