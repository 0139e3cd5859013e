package store

// Action describes an intended state transition. The discriminant is what
// reducers switch on; concrete actions are ordinary Go types.
type Action interface {
	ActionType() string
}

// Type is an Action that carries nothing but its discriminant.
type Type string

// ActionType implements Action.
func (t Type) ActionType() string { return string(t) }

// InitType is dispatched once by New so reducers can install their defaults.
const InitType Type = "@@clicker/INIT"

// TypeOf returns the discriminant of a, or "" when a is nil.
func TypeOf(a Action) string {
	if a == nil {
		return ""
	}
	return a.ActionType()
}
