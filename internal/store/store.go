package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNilReducer is returned when a store is built without a reducer.
var ErrNilReducer = errors.New("store requires a reducer")

// Listener is notified after every successful dispatch. It receives no
// arguments and is expected to call GetState itself.
type Listener func()

type registration struct {
	id uint64
	fn Listener
}

// Store owns the current state and the listener registry.
type Store[S any] struct {
	reducer Reducer[S]
	logger  *slog.Logger

	// dispatchMu serializes reducer application so concurrent dispatches
	// observe each other's results.
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     S
	listeners []registration // copy-on-write; never mutated in place
	nextID    uint64
}

// Option configures a Store at construction.
type Option[S any] func(*options[S])

type options[S any] struct {
	initial *S
	logger  *slog.Logger
}

// WithInitialState seeds the store. Without it the reducer's default applies.
func WithInitialState[S any](state S) Option[S] {
	return func(o *options[S]) {
		o.initial = &state
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(o *options[S]) {
		o.logger = logger
	}
}

// New creates a store and runs the reducer once with InitType.
func New[S any](reducer Reducer[S], opts ...Option[S]) (*Store[S], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}

	o := &options[S]{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	state, err := reducer(o.initial, InitType)
	if err != nil {
		return nil, fmt.Errorf("init reducer: %w", err)
	}

	return &Store[S]{
		reducer: reducer,
		logger:  logger,
		state:   state,
	}, nil
}

// GetState returns the current state. It is safe to call from listeners and
// from within the reducer.
func (s *Store[S]) GetState() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action and then calls every listener registered at the
// moment the new state was installed, in registration order. Listeners are
// called even when the reducer returned the state unchanged.
//
// When the reducer fails the state is left as it was, no listener is called
// and the error is returned. The action is returned for chaining.
//
// Reducers must not call Dispatch; listeners may.
func (s *Store[S]) Dispatch(action Action) (Action, error) {
	listeners, err := s.reduce(action)
	if err != nil {
		s.logger.Debug("dispatch failed", slog.String("action", TypeOf(action)), slog.String("err", err.Error()))
		return action, err
	}

	s.logger.Debug("dispatched", slog.String("action", TypeOf(action)), slog.Int("listeners", len(listeners)))
	for _, l := range listeners {
		l.fn()
	}
	return action, nil
}

func (s *Store[S]) reduce(action Action) ([]registration, error) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	current := s.GetState()
	next, err := s.reducer(&current, action)
	if err != nil {
		return nil, fmt.Errorf("dispatch %q: %w", TypeOf(action), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	return s.listeners, nil
}

// Subscribe registers listener and returns a function that removes exactly
// this registration. The returned function may be called any number of times.
// Changes made while a dispatch is notifying take effect from the next one.
// A nil listener registers nothing.
func (s *Store[S]) Subscribe(listener Listener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	next := make([]registration, len(s.listeners), len(s.listeners)+1)
	copy(next, s.listeners)
	s.listeners = append(next, registration{id: id, fn: listener})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Store[S]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]registration, 0, len(s.listeners))
	for _, r := range s.listeners {
		if r.id != id {
			next = append(next, r)
		}
	}
	s.listeners = next
}

// ListenerCount reports how many listeners are currently registered.
func (s *Store[S]) ListenerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}
