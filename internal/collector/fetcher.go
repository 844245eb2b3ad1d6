package collector

import (
	"context"
	"regexp"
	"strings"

	"StockSentinel/internal/model"
)

// Fetcher supplies raw daily bars for a symbol. Implementations may return
// bars out of order or with missing prices; Collector cleans them up.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.^=-]{0,14}$`)

// NormalizeSymbol upper-cases and trims a ticker and reports whether it is
// well formed.
func NormalizeSymbol(symbol string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	return s, symbolPattern.MatchString(s)
}
