// Package repository defines the append-only event store interface and errors.
package repository

import (
	"context"

	"github.com/okian/hooklog/internal/domain/model"
)

// Store provides append and ordered-query access to canonical events.
// Implementations assign a strictly increasing id at insertion; that id is
// the sole total order over events and the pagination cursor. No update or
// delete operation exists.
type Store interface {
	// Append persists the event and returns it with its assigned id.
	// Fails with ErrUnavailable when the store cannot accept writes.
	Append(ctx context.Context, ev model.CanonicalEvent) (model.StoredEvent, error)

	// Recent returns at most limit events, newest first.
	Recent(ctx context.Context, limit int) ([]model.StoredEvent, error)

	// After returns every event with id strictly greater than cursor,
	// oldest first. No truncation.
	After(ctx context.Context, cursor int64) ([]model.StoredEvent, error)

	// Count returns the number of events currently stored.
	Count(ctx context.Context) int
}
