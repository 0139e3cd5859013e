// Package replay loads YAML action scripts and applies them to a store.
//
// A script lists actions by discriminant, optionally repeated:
//
//	actions:
//	  - type: INCREASE_COUNT
//	    repeat: 3
//	  - type: UNKNOWN
//
// Because reducers are pure, folding a script and dispatching it against a
// fresh store with the same starting state produce the same result.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/clicker/internal/store"
)

// Step is one script entry.
type Step struct {
	Type   string `yaml:"type"`
	Repeat *int   `yaml:"repeat,omitempty"`
}

// Script is a parsed action script.
type Script struct {
	Actions []Step `yaml:"actions"`
}

// Parser turns a discriminant into a concrete action.
type Parser func(name string) store.Action

// Load reads and validates the script at path.
func Load(path string) (Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("open script: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads and validates a script from r. An empty document is an empty script.
func Decode(r io.Reader) (Script, error) {
	var script Script
	if err := yaml.NewDecoder(r).Decode(&script); err != nil && !errors.Is(err, io.EOF) {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	for i, step := range script.Actions {
		if strings.TrimSpace(step.Type) == "" {
			return Script{}, fmt.Errorf("action %d: missing type", i)
		}
		if step.Repeat != nil && *step.Repeat < 0 {
			return Script{}, fmt.Errorf("action %d (%s): repeat must not be negative", i, step.Type)
		}
	}
	return script, nil
}

// Expand returns the script's actions in order, with repeats unrolled.
func (s Script) Expand(parse Parser) []store.Action {
	var out []store.Action
	for _, step := range s.Actions {
		n := 1
		if step.Repeat != nil {
			n = *step.Repeat
		}
		name := strings.TrimSpace(step.Type)
		for i := 0; i < n; i++ {
			out = append(out, parse(name))
		}
	}
	return out
}

// Apply dispatches every action of the script to st and stops at the first
// failed dispatch. It returns the number of actions dispatched.
func Apply[S any](st *store.Store[S], script Script, parse Parser) (int, error) {
	actions := script.Expand(parse)
	for i, action := range actions {
		if _, err := st.Dispatch(action); err != nil {
			return i, fmt.Errorf("replay step %d: %w", i, err)
		}
	}
	return len(actions), nil
}

// Fold computes the state the script produces from initial without a store.
func Fold[S any](reducer store.Reducer[S], initial *S, script Script, parse Parser) (S, error) {
	return store.Fold(reducer, initial, script.Expand(parse)...)
}
