// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/varsity/internal/adapters/repository"
	service "github.com/okian/varsity/internal/app"
	"github.com/okian/varsity/internal/domain/model"
	"github.com/okian/varsity/internal/domain/types"
	"github.com/okian/varsity/internal/domain/valuation"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	ValuationDependencies
	LeaderboardDependencies
}

// ValuationDependencies computes and reads valuations.
type ValuationDependencies interface {
	// Submit queues req for async valuation. requestID may be empty.
	Submit(ctx context.Context, requestID string, req valuation.Request) (service.SubmitResult, error)
	ValueBatch(ctx context.Context, reqs []valuation.Request) ([]valuation.BatchResult, error)
	WAR(ctx context.Context, req valuation.Request) (model.WARResult, error)
	// Valuation returns the stored valuation; season 0 means latest.
	Valuation(ctx context.Context, athleteID string, season int) (*model.Valuation, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	valuationsHandler  *ValuationsHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		valuationsHandler:  NewValuationsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/valuations", MetricsMiddleware(s.valuationsHandler.HandleSubmit, "valuations"))
	mux.HandleFunc("/valuations/batch", MetricsMiddleware(s.valuationsHandler.HandleBatch, "valuations_batch"))
	mux.HandleFunc("/valuations/", MetricsMiddleware(s.valuationsHandler.HandleGet, "valuation"))
	mux.HandleFunc("/war", MetricsMiddleware(s.valuationsHandler.HandleWAR, "war"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps an upstream error to a status and a stable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, valuation.ErrInvalidRequest),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, repository.ErrInvalidLimit):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBackpressure), errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, valuation.ErrConfigurationMissing):
		return http.StatusUnprocessableEntity, "configuration_missing"
	case errors.Is(err, ErrUnavailable), errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, valuation.ErrCanceled):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeClassified(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
