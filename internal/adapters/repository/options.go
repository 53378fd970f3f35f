// Package repository defines the append-only event store interface and errors.
package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-allocates the backing slice. Useful when the
// expected event volume is known up front.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}
