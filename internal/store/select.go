package store

import "sync"

// Selector projects the full state onto the slice a consumer needs.
type Selector[S, T any] func(S) T

// Select returns the current projection of s through selector and subscribes
// onChange to later ones. onChange runs only when a dispatch yields a
// projection that equal reports as different from the last one seen. The store
// still notifies on every dispatch; the filtering happens here.
//
// Reads, comparisons and onChange calls are serialized, so the projections
// delivered never go backwards and the last one delivered matches GetState
// once dispatching stops. onChange must not dispatch to s synchronously.
func Select[S, T any](s *Store[S], selector Selector[S, T], equal func(a, b T) bool, onChange func(T)) (current T, unsubscribe func()) {
	var (
		mu   sync.Mutex
		last T
	)

	// Hold mu across registration so no notification is compared against an
	// unset baseline.
	mu.Lock()
	unsubscribe = s.Subscribe(func() {
		mu.Lock()
		defer mu.Unlock()

		next := selector(s.GetState())
		if equal(last, next) {
			return
		}
		last = next
		onChange(next)
	})
	last = selector(s.GetState())
	current = last
	mu.Unlock()

	return current, unsubscribe
}

// Equal is an equality function for comparable projections.
func Equal[T comparable](a, b T) bool { return a == b }
