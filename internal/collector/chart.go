package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"StockSentinel/internal/model"
	"StockSentinel/pkg/errors"
)

// FileFetcher reads chart snapshots saved as <Dir>/<SYMBOL>.json in the
// chart API response shape.
type FileFetcher struct {
	Dir       string
	SymbolMap map[string]string // internal symbol -> snapshot file stem
}

// NewFileFetcher creates a fetcher rooted at dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{
		Dir: dir,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) fileSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

func (f *FileFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sym, ok := NormalizeSymbol(symbol)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "symbol %q", symbol)
	}

	path := filepath.Join(f.Dir, f.fileSymbol(sym)+".json")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "chart snapshot for %s", sym)
		}
		return nil, fmt.Errorf("open chart snapshot: %w", err)
	}
	defer file.Close()

	bars, err := ParseChart(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sym, err)
	}
	// Drop null bars first so the window holds `days` usable bars.
	bars = Clean(bars)
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// chartResponse is the chart API payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// toFloat maps JSON null (and anything non-numeric) to NaN so the bar is
// recognisably incomplete rather than zero-priced.
func toFloat(values []interface{}, i int) float64 {
	if i >= len(values) {
		return math.NaN()
	}
	switch n := values[i].(type) {
	case float64:
		return n
	case json.Number:
		v, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return v
	default:
		return math.NaN()
	}
}

// ParseChart decodes a chart payload into bars in payload order. Null
// prices become NaN; no bar is dropped here.
func ParseChart(r io.Reader) ([]model.OHLCV, error) {
	var chart chartResponse
	if err := json.NewDecoder(r).Decode(&chart); err != nil {
		return nil, fmt.Errorf("chart decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, errors.Wrap(errors.ErrNotFound, "chart has no data")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   toFloat(quote.Open, i),
			High:   toFloat(quote.High, i),
			Low:    toFloat(quote.Low, i),
			Close:  toFloat(quote.Close, i),
			Volume: toFloat(quote.Volume, i),
		})
	}
	return bars, nil
}
