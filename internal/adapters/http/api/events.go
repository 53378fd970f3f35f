// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"

	"github.com/okian/hooklog/internal/domain/model"
)

// EventsHandler serves the event history.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleGetEvents handles GET /github/events requests.
//
// Without a since cursor the most recent events are returned newest first;
// with one, everything after it in ascending order. A malformed cursor is
// indistinguishable from an empty result: pollers always get 200 with data.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var since *int64
	if raw := r.URL.Query().Get("since"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusOK, eventsResponse{Data: []model.StoredEvent{}})
			return
		}
		since = &id
	}

	events := h.deps.Read(r.Context(), since)
	writeJSON(w, http.StatusOK, eventsResponse{Data: events})
}
