package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/metrics"
	"StockSentinel/internal/model"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/strategy"
	"StockSentinel/pkg/errors"
)

type stubService struct {
	results map[string]*model.TechnicalAnalysisResult
	errs    map[string]error
	runs    []recorder.AnalysisSummary
	limit   int
}

func (s *stubService) Analyze(_ context.Context, symbol string) (*model.TechnicalAnalysisResult, error) {
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	if res, ok := s.results[symbol]; ok {
		return res, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "chart snapshot for %s", symbol)
}

func (s *stubService) Pivots(ctx context.Context, symbol string) (model.PivotPoints, error) {
	res, err := s.Analyze(ctx, symbol)
	if err != nil {
		return model.PivotPoints{}, err
	}
	return res.Indicators.Pivots, nil
}

func (s *stubService) History(_ string, limit int) ([]recorder.AnalysisSummary, error) {
	s.limit = limit
	return s.runs, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *stubService) {
	t.Helper()
	svc := &stubService{
		results: map[string]*model.TechnicalAnalysisResult{
			"AAPL": {
				Symbol:       "AAPL",
				CurrentPrice: 190.5,
				Signals:      model.Signals{Overall: model.TrendBullish, TrendStrength: 2, Messages: []string{}},
				Indicators: model.IndicatorSnapshot{
					Pivots: model.PivotPoints{Standard: model.PivotSet{Pivot: 100, R1: 110, S1: 90}},
				},
			},
		},
		errs: map[string]error{
			"NEWCO": &strategy.InsufficientHistoryError{Symbol: "NEWCO", Have: 42, Need: 200},
			"BAD":   errors.Wrap(errors.ErrInvalidInput, "symbol"),
			"BOOM":  errors.New("disk on fire"),
		},
	}
	reg := prometheus.NewRegistry()
	metrics.New(reg).SetWatchlistSize(3)

	srv := httptest.NewServer(NewRouter(svc, reg, time.Second, nil))
	t.Cleanup(srv.Close)
	return srv, svc
}

func get(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	var body map[string]string
	resp := get(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

func TestAnalysisOK(t *testing.T) {
	srv, _ := newTestServer(t)
	var res model.TechnicalAnalysisResult
	resp := get(t, srv.URL+"/api/analysis/AAPL", &res)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, 190.5, res.CurrentPrice)
	assert.Equal(t, model.TrendBullish, res.Signals.Overall)
}

func TestAnalysisErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	var short map[string]interface{}
	resp := get(t, srv.URL+"/api/analysis/NEWCO", &short)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "insufficient_history", short["error"])
	assert.Equal(t, 42.0, short["have"])
	assert.Equal(t, 200.0, short["need"])

	tests := []struct {
		symbol string
		status int
		code   string
	}{
		{"ZZZZ", http.StatusNotFound, "not_found"},
		{"BAD", http.StatusBadRequest, "invalid_symbol"},
		{"BOOM", http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			var body ErrorResponse
			resp := get(t, srv.URL+"/api/analysis/"+tt.symbol, &body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body.Error)
			assert.Nil(t, body.Have)
		})
	}
}

func TestPivots(t *testing.T) {
	srv, _ := newTestServer(t)
	var body pivotsResponse
	resp := get(t, srv.URL+"/api/pivots/AAPL", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "AAPL", body.Symbol)
	assert.Equal(t, 110.0, body.Pivots.Standard.R1)

	resp = get(t, srv.URL+"/api/pivots/NEWCO", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHistory(t *testing.T) {
	srv, svc := newTestServer(t)

	var runs []recorder.AnalysisSummary
	resp := get(t, srv.URL+"/api/history/AAPL", &runs)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, runs)
	assert.Equal(t, 10, svc.limit)

	svc.runs = []recorder.AnalysisSummary{{RunID: "r1", Symbol: "AAPL"}}
	resp = get(t, srv.URL+"/api/history/AAPL?limit=3", &runs)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, runs, 1)
	assert.Equal(t, "r1", runs[0].RunID)
	assert.Equal(t, 3, svc.limit)

	resp = get(t, srv.URL+"/api/history/AAPL?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "stock_sentinel_watchlist_size 3")
}
