// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	app "github.com/okian/hooklog/internal/app"
	"github.com/okian/hooklog/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Ingest runs one webhook delivery through the pipeline.
	Ingest(ctx context.Context, d app.Delivery) (app.Outcome, error)

	// Read serves the history query; nil cursor means most-recent.
	Read(ctx context.Context, since *int64) []model.StoredEvent
}

// StatsProvider exposes service statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	webhookHandler *WebhookHandler
	eventsHandler  *EventsHandler
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
}

// NewServer creates a new API server with all handlers. maxBodyBytes bounds
// inbound webhook bodies.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxBodyBytes int64) *Server {
	return &Server{
		webhookHandler: NewWebhookHandler(deps, maxBodyBytes),
		eventsHandler:  NewEventsHandler(deps),
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/webhook/receiver", MetricsMiddleware(s.webhookHandler.HandleReceive, "webhook_receiver"))
	mux.HandleFunc("/github/events", MetricsMiddleware(s.eventsHandler.HandleGetEvents, "github_events"))
}

// errorResponse is the wire shape of failure bodies: {"error": "..."}.
type errorResponse struct {
	Error string `json:"error"`
}

// eventsResponse wraps the history list: {"data": [...]}.
type eventsResponse struct {
	Data []model.StoredEvent `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeEmpty responds with an empty JSON object body, matching the upstream
// sender's expectation of a body-less acknowledgement.
func writeEmpty(w http.ResponseWriter, status int) {
	writeJSON(w, status, struct{}{})
}
