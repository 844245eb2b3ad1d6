package calculator

import (
	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
)

// MACDSeries holds the aligned MACD line, signal line and histogram.
// All three share the same length; index i of each refers to the same bar.
type MACDSeries struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// CalculateMACDSeries builds the full MACD line from complete fast/slow EMA
// arrays and then smooths it with an EMA(signal).
func CalculateMACDSeries(prices []float64, fast, slow, signal int) (*MACDSeries, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid MACD periods %d/%d/%d", fast, slow, signal)
	}
	if len(prices) < slow+signal+10 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "MACD(%d,%d,%d) needs %d prices, have %d",
			fast, slow, signal, slow+signal+10, len(prices))
	}

	fastEMA, err := EMASeries(prices, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMASeries(prices, slow)
	if err != nil {
		return nil, err
	}

	// fastEMA[0] is bar fast-1, slowEMA[0] is bar slow-1.
	offset := slow - fast
	line := make([]float64, len(slowEMA))
	for i := range slowEMA {
		line[i] = fastEMA[i+offset] - slowEMA[i]
	}

	sig, err := EMASeries(line, signal)
	if err != nil {
		return nil, err
	}
	line = line[signal-1:]
	hist := make([]float64, len(sig))
	for i := range sig {
		hist[i] = line[i] - sig[i]
	}
	return &MACDSeries{MACD: line, Signal: sig, Histogram: hist}, nil
}

// CalculateMACD returns the latest MACD state with crossover and histogram classification.
func CalculateMACD(prices []float64, fast, slow, signal int) (model.MACDState, error) {
	s, err := CalculateMACDSeries(prices, fast, slow, signal)
	if err != nil {
		return model.MACDState{}, err
	}
	n := len(s.MACD)
	st := model.MACDState{
		MACD:          s.MACD[n-1],
		Signal:        s.Signal[n-1],
		Histogram:     s.Histogram[n-1],
		PrevMACD:      s.MACD[n-2],
		PrevSignal:    s.Signal[n-2],
		PrevHistogram: s.Histogram[n-2],
	}

	st.Trend = "BEARISH"
	if st.Histogram > 0 {
		st.Trend = "BULLISH"
	}
	if st.Histogram < 0 {
		st.Momentum = -st.Histogram
	} else {
		st.Momentum = st.Histogram
	}

	switch {
	case st.PrevMACD <= st.PrevSignal && st.MACD > st.Signal:
		st.Crossover = model.CrossoverBullish
	case st.PrevMACD >= st.PrevSignal && st.MACD < st.Signal:
		st.Crossover = model.CrossoverBearish
	default:
		st.Crossover = model.CrossoverNone
	}

	st.HistogramTrend = classifyHistogram(st.Histogram, st.PrevHistogram)
	return st, nil
}

func classifyHistogram(cur, prev float64) model.HistogramTrend {
	switch {
	case cur > 0 && cur > prev:
		return model.HistogramStrongBullish
	case cur > 0 && cur < prev:
		return model.HistogramWeakeningBullish
	case cur < 0 && cur < prev:
		return model.HistogramStrongBearish
	case cur < 0 && cur > prev:
		return model.HistogramWeakeningBearish
	default:
		return model.HistogramNeutral
	}
}
