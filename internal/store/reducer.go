package store

import "fmt"

// Reducer computes the next state from the current one and an action.
//
// state is nil on the first invocation, in which case the reducer returns its
// default state. Reducers must not write through state, must be free of side
// effects, and must return the prior state unchanged for actions they do not
// recognise. A non-nil error aborts the dispatch that triggered it.
type Reducer[S any] func(state *S, action Action) (S, error)

// Fold applies actions left to right starting from initial, exactly as a
// Store created with the same reducer and initial state would after
// dispatching them. InitType is applied first.
func Fold[S any](reducer Reducer[S], initial *S, actions ...Action) (S, error) {
	var zero S
	if reducer == nil {
		return zero, ErrNilReducer
	}

	current, err := reducer(initial, InitType)
	if err != nil {
		return zero, fmt.Errorf("init: %w", err)
	}
	for i, action := range actions {
		next, err := reducer(&current, action)
		if err != nil {
			return zero, fmt.Errorf("action %d (%q): %w", i, TypeOf(action), err)
		}
		current = next
	}
	return current, nil
}
