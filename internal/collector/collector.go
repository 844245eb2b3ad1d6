package collector

import (
	"context"
	"sort"
	"time"

	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

// Collector turns a Fetcher's raw bars into a clean PriceSeries.
type Collector struct {
	fetcher Fetcher
	days    int
	log     *logger.Logger
	now     func() time.Time
}

// NewCollector creates a Collector that keeps at most `days` bars per symbol.
func NewCollector(fetcher Fetcher, days int, log *logger.Logger) *Collector {
	if log == nil {
		log = logger.Nop()
	}
	return &Collector{
		fetcher: fetcher,
		days:    days,
		log:     log.With("component", "collector", "source", fetcher.Name()),
		now:     time.Now,
	}
}

// Source names the underlying fetcher.
func (c *Collector) Source() string { return c.fetcher.Name() }

// Collect fetches, validates, orders and trims the daily history.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	sym, ok := NormalizeSymbol(symbol)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "symbol %q", symbol)
	}

	raw, err := c.fetcher.FetchDailyBars(ctx, sym, c.days)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s daily bars", sym)
	}

	bars := Clean(raw)
	if dropped := len(raw) - len(bars); dropped > 0 {
		c.log.Debugw("dropped incomplete bars", "symbol", sym, "dropped", dropped, "kept", len(bars))
	}
	if c.days > 0 && len(bars) > c.days {
		bars = bars[len(bars)-c.days:]
	}

	return &model.PriceSeries{Symbol: sym, Bars: bars, FetchedAt: c.now().UTC()}, nil
}

// Clean drops bars with a missing price, sorts by time and keeps the last
// bar for any repeated timestamp.
func Clean(raw []model.OHLCV) []model.OHLCV {
	series := model.PriceSeries{Bars: raw}
	bars := series.ValidBars()
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
