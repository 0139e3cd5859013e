// Package counter is the click-counting reducer the clicker app runs on.
package counter

import (
	"github.com/five82/clicker/internal/store"
)

// IncreaseCountType is the discriminant of IncreaseCount.
const IncreaseCountType = "INCREASE_COUNT"

// State is the whole application state.
type State struct {
	Clicks int `json:"clicks" yaml:"clicks" toml:"clicks"`
}

// IncreaseCount adds one click.
type IncreaseCount struct{}

// ActionType implements store.Action.
func (IncreaseCount) ActionType() string { return IncreaseCountType }

// Reduce is the counter's store.Reducer. It matches on the discriminant, so
// store.Type(IncreaseCountType) and *IncreaseCount count as clicks too.
// Unrecognised actions, including the init sentinel and nil, return the prior
// state unchanged.
func Reduce(state *State, action store.Action) (State, error) {
	if state == nil {
		return State{}, nil
	}

	switch store.TypeOf(action) {
	case IncreaseCountType:
		return State{Clicks: state.Clicks + 1}, nil
	default:
		return *state, nil
	}
}

// ParseAction maps a discriminant to its concrete action. Names the counter
// does not know come back as store.Type so the reducer can pass them through.
func ParseAction(name string) store.Action {
	switch name {
	case IncreaseCountType:
		return IncreaseCount{}
	default:
		return store.Type(name)
	}
}

// SelectClicks projects the click count out of the state.
func SelectClicks(s State) int {
	return s.Clicks
}

// NewStore builds a store running Reduce. A nil initial uses the reducer's
// default of zero clicks.
func NewStore(initial *State, opts ...store.Option[State]) (*store.Store[State], error) {
	if initial != nil {
		opts = append([]store.Option[State]{store.WithInitialState(*initial)}, opts...)
	}
	return store.New(Reduce, opts...)
}
