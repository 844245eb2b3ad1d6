package calculator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
)

func linear(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestCalculateSMA(t *testing.T) {
	v, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestEMA_SeedEqualsSimpleAverage(t *testing.T) {
	prices := []float64{10, 11, 9, 14, 12, 15, 13, 8, 16, 12}
	ema, err := CalculateEMA(prices, len(prices))
	require.NoError(t, err)

	sma, err := CalculateSMA(prices, len(prices))
	require.NoError(t, err)
	assert.InDelta(t, sma, ema, 1e-9)
}

func TestEMA_LinearSeries(t *testing.T) {
	// k = 0.5 for period 3; an SMA-seeded EMA of a ramp lags by exactly one step.
	series, err := EMASeries(linear(10, 1, 1), 3)
	require.NoError(t, err)
	require.Len(t, series, 8)
	assert.InDelta(t, 2.0, series[0], 1e-12)
	assert.InDelta(t, 9.0, series[len(series)-1], 1e-12)

	_, err = CalculateEMA([]float64{1, 2}, 3)
	assert.Error(t, err)
}

func TestRSI_MonotonicInput(t *testing.T) {
	up, err := CalculateRSI(linear(30, 10, 0.5), 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, up)

	down, err := CalculateRSI(linear(30, 50, -0.5), 14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, down)

	flat, err := CalculateRSI(linear(30, 42, 0), 14)
	require.NoError(t, err)
	assert.Equal(t, 50.0, flat)
}

func TestRSI_Bounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	prices := make([]float64, 120)
	p := 100.0
	for i := range prices {
		p += r.Float64()*4 - 2
		prices[i] = p
	}
	rsi, err := CalculateRSI(prices, 14)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)

	_, err = CalculateRSI(prices[:14], 14)
	assert.Error(t, err, "needs period+1 closes")
}

func TestATR_NonNegative(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	n := 250
	highs, lows, closes := make([]float64, n), make([]float64, n), make([]float64, n)
	p := 50.0
	for i := 0; i < n; i++ {
		p *= 1 + (r.Float64()-0.5)*0.06
		spread := p * r.Float64() * 0.03
		closes[i] = p
		highs[i] = p + spread
		lows[i] = p - spread
	}
	series, err := ATRSeries(highs, lows, closes, 14)
	require.NoError(t, err)
	require.Len(t, series, n-14)
	for i, v := range series {
		assert.GreaterOrEqual(t, v, 0.0, "ATR at %d", i)
	}
}

func TestATR_ConstantRange(t *testing.T) {
	n := 40
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i := range closes {
		closes[i] = 100
		highs[i] = 101
		lows[i] = 99
	}
	atr, err := CalculateATR(highs, lows, closes, 14)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, atr, 1e-9)

	_, err = CalculateATR(highs[:14], lows[:14], closes[:14], 14)
	assert.Error(t, err)
}

func TestTrueRange_UsesPreviousClose(t *testing.T) {
	tr := TrueRange([]float64{10, 12}, []float64{9, 11.5}, []float64{9.5, 12})
	require.Len(t, tr, 2)
	assert.Equal(t, 0.0, tr[0])
	assert.InDelta(t, 2.5, tr[1], 1e-12) // gap up: high - prevClose
}

// accelerating decline followed by a steep linear rise: the MACD line crosses
// its signal exactly once, on the way up.
func vShape() []float64 {
	var prices []float64
	for t := 0; t < 80; t++ {
		prices = append(prices, 200-0.01*float64(t*t))
	}
	bottom := prices[len(prices)-1]
	for t := 1; t <= 40; t++ {
		prices = append(prices, bottom+1.5*float64(t))
	}
	return prices
}

func TestMACD_CrossoverDetectedOnce(t *testing.T) {
	prices := vShape()
	minLen := 26 + 9 + 10

	var bullishAt []int
	for end := minLen; end <= len(prices); end++ {
		st, err := CalculateMACD(prices[:end], 12, 26, 9)
		require.NoError(t, err)
		assert.NotEqual(t, model.CrossoverBearish, st.Crossover, "bar %d", end-1)
		if st.Crossover == model.CrossoverBullish {
			bullishAt = append(bullishAt, end-1)
		}
	}
	require.Len(t, bullishAt, 1)
	assert.Greater(t, bullishAt[0], 79, "cross happens during the rise")

	st, err := CalculateMACD(prices[:bullishAt[0]+1], 12, 26, 9)
	require.NoError(t, err)
	assert.LessOrEqual(t, st.PrevMACD, st.PrevSignal)
	assert.Greater(t, st.MACD, st.Signal)
	assert.Equal(t, "BULLISH", st.Trend)
}

func TestMACD_RequiresHistory(t *testing.T) {
	_, err := CalculateMACD(linear(44, 1, 1), 12, 26, 9)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	_, err = CalculateMACD(linear(45, 1, 1), 12, 26, 9)
	assert.NoError(t, err)
}

func TestMACDSeries_Aligned(t *testing.T) {
	s, err := CalculateMACDSeries(vShape(), 12, 26, 9)
	require.NoError(t, err)
	assert.Len(t, s.MACD, len(s.Signal))
	assert.Len(t, s.Histogram, len(s.Signal))
	assert.Len(t, s.MACD, 120-26+1-9+1)
}

func TestClassifyHistogram(t *testing.T) {
	tests := []struct {
		cur, prev float64
		want      model.HistogramTrend
	}{
		{2, 1, model.HistogramStrongBullish},
		{1, 2, model.HistogramWeakeningBullish},
		{-2, -1, model.HistogramStrongBearish},
		{-1, -2, model.HistogramWeakeningBearish},
		{1, 1, model.HistogramNeutral},
		{0, -1, model.HistogramNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyHistogram(tt.cur, tt.prev), "cur=%v prev=%v", tt.cur, tt.prev)
	}
}

func TestBollinger(t *testing.T) {
	bb, err := CalculateBollinger([]float64{0, 1, 2, 3, 4, 5}, 5, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, bb.Middle, 1e-9)
	assert.InDelta(t, 3+2*1.41421356, bb.Upper, 1e-6)
	assert.InDelta(t, 3-2*1.41421356, bb.Lower, 1e-6)
	assert.InDelta(t, (bb.Upper-bb.Lower)/3*100, bb.Bandwidth, 1e-9)

	flat, err := CalculateBollinger(linear(30, 100, 0), 20, 2)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, flat.Upper, 1e-9)
	assert.InDelta(t, 100.0, flat.Lower, 1e-9)
	assert.InDelta(t, 0.0, flat.Bandwidth, 1e-9)
}

func TestFibonacci(t *testing.T) {
	f := CalculateFibonacci(200, 100)
	assert.InDelta(t, 200.0, f.L0, 1e-9)
	assert.InDelta(t, 161.8, f.L382, 1e-9)
	assert.InDelta(t, 150.0, f.L500, 1e-9)
	assert.InDelta(t, 138.2, f.L618, 1e-9)
	assert.InDelta(t, 100.0, f.L1000, 1e-9)
	assert.InDelta(t, 227.2, f.Ext1272, 1e-9)
	assert.InDelta(t, 261.8, f.Ext1618, 1e-9)
	assert.InDelta(t, 361.8, f.Ext2618, 1e-9)
}

func TestPivots(t *testing.T) {
	p := CalculatePivots(110, 90, 100)

	assert.InDelta(t, 100.0, p.Standard.Pivot, 1e-9)
	assert.InDelta(t, 110.0, p.Standard.R1, 1e-9)
	assert.InDelta(t, 120.0, p.Standard.R2, 1e-9)
	assert.InDelta(t, 130.0, p.Standard.R3, 1e-9)
	assert.InDelta(t, 90.0, p.Standard.S1, 1e-9)
	assert.InDelta(t, 80.0, p.Standard.S2, 1e-9)
	assert.InDelta(t, 70.0, p.Standard.S3, 1e-9)

	assert.InDelta(t, 107.64, p.Fibonacci.R1, 1e-9)
	assert.InDelta(t, 80.0, p.Fibonacci.S3, 1e-9)

	assert.InDelta(t, 111.0, p.Camarilla.R4, 1e-9)
	assert.InDelta(t, 89.0, p.Camarilla.S4, 1e-9)
	assert.InDelta(t, 100+22.0/12, p.Camarilla.R1, 1e-9)
}

func TestHighLowAndPosition(t *testing.T) {
	highs := []float64{5, 9, 7, 6}
	lows := []float64{1, 4, 3, 2}
	h, l, err := HighLow(highs, lows, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, h)
	assert.Equal(t, 2.0, l)

	h, l, err = HighLow(highs, lows, 50)
	require.NoError(t, err)
	assert.Equal(t, 9.0, h)
	assert.Equal(t, 1.0, l)

	pos, err := RangePosition(4.5, 7, 2)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, pos, 1e-9)

	pos, err = RangePosition(3, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 50.0, pos)

	_, err = RangePosition(3, 1, 2)
	assert.Error(t, err)
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, 0.0, Volatility(linear(30, 100, 0), 20))

	v := Volatility([]float64{90, 110, 90, 110}, 4)
	assert.InDelta(t, 0.1, v, 1e-9)

	assert.Equal(t, 0.0, Volatility([]float64{5}, 20))
}
