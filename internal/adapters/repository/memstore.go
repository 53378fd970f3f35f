package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/okian/hooklog/internal/domain/model"
	"github.com/okian/hooklog/pkg/metrics"
)

// defaultInitialCapacity sizes the backing slice before the first append.
const defaultInitialCapacity = 1024

// MemStore implements Store with an RWMutex over an append-only slice.
// Ids start at 1 and increase by one per append, so the slice is always
// sorted by id and range queries reduce to a binary search plus a copy.
// Concurrent appends and queries need no client-side coordination beyond
// the store's own lock.
type MemStore struct {
	mu              sync.RWMutex
	events          []model.StoredEvent
	nextID          int64
	closed          bool
	initialCapacity int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		nextID:          1,
		initialCapacity: defaultInitialCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = make([]model.StoredEvent, 0, s.initialCapacity)
	return s
}

// Append persists ev with the next id. The context is accepted for interface
// parity with I/O-backed stores; the in-memory path never blocks on it.
func (s *MemStore) Append(_ context.Context, ev model.CanonicalEvent) (model.StoredEvent, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.StoredEvent{}, ErrUnavailable
	}

	stored := model.StoredEvent{ID: s.nextID, CanonicalEvent: ev}
	s.events = append(s.events, stored)
	s.nextID++

	metrics.RecordStoreAppendLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.UpdateStoreSize(len(s.events))
	return stored, nil
}

// Recent returns at most limit events, newest first.
func (s *MemStore) Recent(_ context.Context, limit int) ([]model.StoredEvent, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrUnavailable
	}

	n := len(s.events)
	if limit > n {
		limit = n
	}
	out := make([]model.StoredEvent, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.events[n-1-i]
	}
	return out, nil
}

// After returns every event with id strictly greater than cursor, ascending.
func (s *MemStore) After(_ context.Context, cursor int64) ([]model.StoredEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrUnavailable
	}

	// Events are sorted by id; find the first entry past the cursor.
	idx := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].ID > cursor
	})
	out := make([]model.StoredEvent, len(s.events)-idx)
	copy(out, s.events[idx:])
	return out, nil
}

// Count returns the number of stored events.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Close marks the store unavailable. Subsequent operations fail with
// ErrUnavailable; already-returned slices remain valid.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
