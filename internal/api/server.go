// Package api exposes analyses over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"StockSentinel/internal/model"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/strategy"
	"StockSentinel/pkg/errors"
	"StockSentinel/pkg/logger"
)

// Service is what the handlers need from the analysis pipeline.
type Service interface {
	Analyze(ctx context.Context, symbol string) (*model.TechnicalAnalysisResult, error)
	Pivots(ctx context.Context, symbol string) (model.PivotPoints, error)
	History(symbol string, limit int) ([]recorder.AnalysisSummary, error)
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Have    *int   `json:"have,omitempty"`
	Need    *int   `json:"need,omitempty"`
}

type handler struct {
	svc Service
	log *logger.Logger
}

// NewRouter builds the HTTP routes. gatherer backs /metrics.
func NewRouter(svc Service, gatherer prometheus.Gatherer, timeout time.Duration, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "api")
	h := &handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))
		r.Get("/analysis/{symbol}", h.analysis)
		r.Get("/pivots/{symbol}", h.pivots)
		r.Get("/history/{symbol}", h.history)
	})
	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *handler) analysis(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	res, err := h.svc.Analyze(r.Context(), symbol)
	if err != nil {
		h.writeError(w, symbol, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type pivotsResponse struct {
	Symbol string            `json:"symbol"`
	Pivots model.PivotPoints `json:"pivots"`
}

func (h *handler) pivots(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	p, err := h.svc.Pivots(r.Context(), symbol)
	if err != nil {
		h.writeError(w, symbol, err)
		return
	}
	writeJSON(w, http.StatusOK, pivotsResponse{Symbol: symbol, Pivots: p})
}

func (h *handler) history(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_limit", Message: "limit must be 1-100"})
			return
		}
		limit = n
	}
	runs, err := h.svc.History(symbol, limit)
	if err != nil {
		h.writeError(w, symbol, err)
		return
	}
	if runs == nil {
		runs = []recorder.AnalysisSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (h *handler) writeError(w http.ResponseWriter, symbol string, err error) {
	var short *strategy.InsufficientHistoryError
	switch {
	case errors.As(err, &short):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: "insufficient_history", Have: &short.Have, Need: &short.Need,
		})
	case errors.Is(err, errors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "no data for " + symbol})
	case errors.Is(err, errors.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_symbol", Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, ErrorResponse{Error: "timeout"})
	default:
		h.log.Errorw("request failed", "symbol", symbol, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
