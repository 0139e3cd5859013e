package replay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/clicker/internal/counter"
)

const sample = `
actions:
  - type: INCREASE_COUNT
    repeat: 3
  - type: UNKNOWN
  - type: INCREASE_COUNT
  - type: INCREASE_COUNT
    repeat: 0
`

func TestDecode_ExpandsRepeats(t *testing.T) {
	script, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	actions := script.Expand(counter.ParseAction)
	if len(actions) != 5 {
		t.Fatalf("Expand returned %d actions, want 5", len(actions))
	}
	if _, ok := actions[3].(counter.IncreaseCount); ok {
		t.Fatalf("actions[3] = %#v, want the UNKNOWN passthrough", actions[3])
	}
}

func TestApply_MatchesFold(t *testing.T) {
	script, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	start := counter.State{Clicks: 10}
	s, err := counter.NewStore(&start)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	calls := 0
	s.Subscribe(func() { calls++ })

	n, err := Apply(s, script, counter.ParseAction)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if n != 5 || calls != 5 {
		t.Fatalf("dispatched %d, listener calls %d, want 5 and 5", n, calls)
	}

	want, err := Fold(counter.Reduce, &start, script, counter.ParseAction)
	if err != nil {
		t.Fatalf("Fold returned error: %v", err)
	}
	if got := s.GetState(); got != want || got.Clicks != 14 {
		t.Fatalf("GetState = %+v, Fold = %+v, want Clicks 14", got, want)
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "actions: [", "parse script"},
		{"missing type", "actions:\n  - repeat: 2\n", "action 0: missing type"},
		{"negative repeat", "actions:\n  - type: INCREASE_COUNT\n  - type: X\n    repeat: -1\n", "action 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Decode error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	script, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(script.Expand(counter.ParseAction)) != 0 {
		t.Fatalf("empty script expanded to actions")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	script, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(script.Actions) != 4 {
		t.Fatalf("Actions = %d, want 4", len(script.Actions))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load(missing) returned nil error")
	}
}
