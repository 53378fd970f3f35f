// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/hooklog/internal/adapters/repository"
	app "github.com/okian/hooklog/internal/app"
	"github.com/okian/hooklog/internal/domain/signature"
)

// Webhook headers set by the upstream sender.
const (
	headerSignature = "X-Hub-Signature-256"
	headerEvent     = "X-GitHub-Event"
)

// WebhookHandler handles inbound webhook deliveries.
type WebhookHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(deps Dependencies, maxBodyBytes int64) *WebhookHandler {
	return &WebhookHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleReceive handles POST /webhook/receiver.
//
// The signature always covers the raw body bytes, so the body is read in
// full before any decoding; for form-encoded deliveries the JSON document is
// then lifted out of the payload field. Missing routing headers are a 409,
// matching the sender's redelivery semantics for misconfigured hooks.
func (h *WebhookHandler) HandleReceive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	sig := r.Header.Get(headerSignature)
	event := r.Header.Get(headerEvent)
	if sig == "" || event == "" {
		writeEmpty(w, http.StatusConflict)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest)
		return
	}

	delivery := app.Delivery{
		Raw:       raw,
		Payload:   extractPayload(r.Header.Get("Content-Type"), raw),
		Signature: sig,
		Event:     event,
	}

	// ACCEPTED and DROPPED are acknowledged identically.
	if _, err := h.deps.Ingest(r.Context(), delivery); err != nil {
		respondIngestError(w, err)
		return
	}
	writeEmpty(w, http.StatusOK)
}

// respondIngestError maps pipeline errors to the webhook response contract.
func respondIngestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, signature.ErrMissingSignature):
		writeEmpty(w, http.StatusConflict)
	case errors.Is(err, signature.ErrMismatch):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, repository.ErrUnavailable):
		writeEmpty(w, http.StatusInternalServerError)
	default:
		// Classification and schema failures carry the generic message.
		writeError(w, http.StatusBadRequest, err)
	}
}

// extractPayload returns the JSON document of a delivery: the body itself,
// or the payload form field when the sender used form-encoding.
func extractPayload(contentType string, raw []byte) []byte {
	if !strings.Contains(contentType, "application/x-www-form-urlencoded") {
		return raw
	}
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return raw
	}
	if p := values.Get("payload"); p != "" {
		return []byte(p)
	}
	return []byte("{}")
}
