package collector

import (
	"context"
	"math"
	"time"

	"StockSentinel/internal/model"
)

// MockFetcher returns controllable synthetic data for development and testing.
type MockFetcher struct {
	Price     float64
	Drift     float64 // per-bar fractional trend
	DailyData map[string][]model.OHLCV
	Err       error
	End       time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.DailyData[symbol]; ok {
		return bars, nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return generateMockBars(m.Price, m.Drift, days, end), nil
}

// generateMockBars draws a drifting sine wave so swings and zones appear.
func generateMockBars(basePrice, drift float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	prev := basePrice
	for i := 0; i < count; i++ {
		p := basePrice * (1 + drift*float64(i-count/2)) * (1 + 0.04*math.Sin(float64(i)/9))
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   prev,
			High:   math.Max(prev, p) * 1.005,
			Low:    math.Min(prev, p) * 0.995,
			Close:  p,
			Volume: 1000000 * (1 + 0.3*math.Cos(float64(i)/5)),
		}
		prev = p
	}
	return bars
}
