// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/okian/hooklog/internal/adapters/repository"
	"github.com/okian/hooklog/internal/domain/canonical"
	"github.com/okian/hooklog/internal/domain/classify"
	"github.com/okian/hooklog/internal/domain/model"
	"github.com/okian/hooklog/internal/domain/payload"
	"github.com/okian/hooklog/internal/domain/signature"
	"github.com/okian/hooklog/pkg/logger"
	"github.com/okian/hooklog/pkg/metrics"
)

// Outcome is the terminal state of one ingestion request.
type Outcome string

// Terminal outcomes. DROPPED is acknowledged to the sender exactly like
// ACCEPTED: a payload without a resolvable identity would drop again on
// redelivery, so surfacing it as a failure would only cause retry churn.
const (
	OutcomeAccepted Outcome = "ACCEPTED"
	OutcomeDropped  Outcome = "DROPPED"
	OutcomeRejected Outcome = "REJECTED"
)

// Rejection reason labels for metrics.
const (
	reasonAuth     = "auth"
	reasonClassify = "classify"
	reasonSchema   = "schema"
	reasonStore    = "store"
)

// Delivery is one inbound webhook request as handed over by the HTTP
// boundary: raw bytes plus the two routing headers. Payload is the JSON
// document (extracted from the form envelope when the sender used
// form-encoding); Raw is the exact body bytes the signature covers.
type Delivery struct {
	Raw       []byte
	Payload   []byte
	Signature string
	Event     string
}

// Service orchestrates the ingestion pipeline and the history read path.
// Each Ingest call is a straight-line sequence with no cross-request state;
// ordering is delegated entirely to the store's id assignment.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	secret        string
	recentLimit   int
	storeCapacity int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSecret sets the shared secret used for signature verification.
func WithSecret(secret string) Option {
	return func(s *Service) {
		s.secret = secret
	}
}

// WithRecentLimit caps cursor-less history reads.
func WithRecentLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.recentLimit = limit
		}
	}
}

// WithStoreCapacity pre-sizes the event store.
func WithStoreCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.storeCapacity = n
		}
	}
}

// WithStore injects a store implementation. Used by tests and by callers
// that bring their own persistence.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		recentLimit:   50,
		storeCapacity: 1024,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewMemStore(
			repository.WithInitialCapacity(s.storeCapacity),
		)
		s.logger.Info(ctx, "using in-memory event store")
	}

	s.started = true
	s.logger.Info(ctx, "webhook service started",
		logger.Int("recentLimit", s.recentLimit),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "webhook service stopped")
}

// Ingest runs one delivery through verify -> classify -> parse ->
// canonicalize -> persist. Any stage failure short-circuits the rest and
// yields OutcomeRejected with the stage's error; a canonicalization miss
// yields OutcomeDropped with a nil error.
func (s *Service) Ingest(ctx context.Context, d Delivery) (Outcome, error) {
	if err := signature.Verify(d.Raw, d.Signature, s.secret); err != nil {
		metrics.RecordSignatureFailure()
		return s.reject(ctx, reasonAuth, err)
	}

	action, err := classify.Classify(d.Event, d.Payload)
	if err != nil {
		return s.reject(ctx, reasonClassify, err)
	}

	ev, ok, err := s.canonicalize(action, d.Payload)
	if err != nil {
		return s.reject(ctx, reasonSchema, err)
	}
	if !ok {
		metrics.RecordDelivery(string(OutcomeDropped))
		s.logger.Info(ctx, "delivery dropped: no resolvable identity",
			logger.String("action", string(action)),
		)
		return OutcomeDropped, nil
	}

	stored, err := s.store.Append(ctx, ev)
	if err != nil {
		return s.reject(ctx, reasonStore, err)
	}

	metrics.RecordDelivery(string(OutcomeAccepted))
	s.logger.Info(ctx, "delivery accepted",
		logger.String("action", string(ev.Action)),
		logger.String("requestID", ev.RequestID),
		logger.Int64("id", stored.ID),
	)
	return OutcomeAccepted, nil
}

// canonicalize parses raw against the contract selected by action and
// reduces it to a canonical event. ok=false means the payload parsed but
// yields no record.
func (s *Service) canonicalize(action model.Action, raw []byte) (model.CanonicalEvent, bool, error) {
	switch action {
	case model.ActionPush:
		p, err := payload.ParsePush(raw)
		if err != nil {
			return model.CanonicalEvent{}, false, err
		}
		ev, ok := canonical.FromPush(p)
		return ev, ok, nil
	default:
		p, err := payload.ParsePullRequest(raw)
		if err != nil {
			return model.CanonicalEvent{}, false, err
		}
		ev, ok := canonical.FromPullRequest(action, p)
		return ev, ok, nil
	}
}

func (s *Service) reject(ctx context.Context, reason string, err error) (Outcome, error) {
	metrics.RecordDelivery(string(OutcomeRejected))
	metrics.RecordRejection(reason)
	s.logger.Warn(ctx, "delivery rejected",
		logger.String("reason", reason),
		logger.Error(err),
	)
	return OutcomeRejected, err
}

// Read serves the history query. A nil cursor returns the most recent
// events (newest first, bounded); a cursor returns everything after it in
// ascending order. Store failures degrade to an empty list so the read path
// stays available to pollers.
func (s *Service) Read(ctx context.Context, since *int64) []model.StoredEvent {
	var (
		events []model.StoredEvent
		err    error
	)
	if since == nil {
		metrics.RecordReadQuery("recent")
		events, err = s.store.Recent(ctx, s.recentLimit)
	} else {
		metrics.RecordReadQuery("after")
		events, err = s.store.After(ctx, *since)
	}
	if err != nil {
		s.logger.Error(ctx, "history read failed", logger.Error(err))
		return []model.StoredEvent{}
	}
	if events == nil {
		events = []model.StoredEvent{}
	}
	return events
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"recentLimit": s.recentLimit,
	}

	if s.started {
		n := s.store.Count(context.Background())
		stats["storedEvents"] = n
		metrics.UpdateStoreSize(n)
	}

	return stats
}
