package markov

import (
	"slices"
	"testing"
)

func TestStats(t *testing.T) {
	testCases := []struct {
		name     string
		tokens   []string
		expected Stats
	}{
		{
			name:     "Canonical sequence",
			tokens:   abacab,
			expected: Stats{States: 3, Transitions: 4, TotalFrequency: 5, DeadEnds: 0},
		},
		{
			name:     "Chain ending in a dead end",
			tokens:   []string{"a", "b", "c"},
			expected: Stats{States: 3, Transitions: 2, TotalFrequency: 2, DeadEnds: 1},
		},
		{
			name:     "Single token",
			tokens:   []string{"x"},
			expected: Stats{States: 1, Transitions: 0, TotalFrequency: 0, DeadEnds: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTrainedGenerator(t, tc.tokens)
			if got := g.Stats(); got != tc.expected {
				t.Errorf("Stats() = %+v, want %+v", got, tc.expected)
			}
		})
	}
}

func TestStatesReturnsCopy(t *testing.T) {
	g := newTrainedGenerator(t, abacab)
	states := g.States()
	states[0] = "mutated"
	if !slices.Equal(g.States(), []string{"a", "b", "c"}) {
		t.Errorf("modifying the returned slice changed the model: %v", g.States())
	}
}

func TestTransitionsReturnsCopy(t *testing.T) {
	g := newTrainedGenerator(t, abacab)
	next, _ := g.Transitions("a")
	next["b"] = 100
	again, _ := g.Transitions("a")
	if again["b"] != 2 {
		t.Errorf("modifying the returned map changed the model: %v", again)
	}
}

func TestRender(t *testing.T) {
	g := newTrainedGenerator(t, abacab)
	expected := `Generator: {
  "a" => {
    "b" : 2,
    "c" : 1,
  },
  "b" => {
    "a" : 1,
  },
  "c" => {
    "a" : 1,
  },
}`
	if got := g.Render(); got != expected {
		t.Errorf("Render() got:\n%s\nwant:\n%s", got, expected)
	}
	if g.String() != g.Render() {
		t.Error("String() and Render() differ")
	}
}

func TestRenderDeadEndAndEmpty(t *testing.T) {
	if got := New[string]().Render(); got != "Generator: {\n}" {
		t.Errorf("empty Render() = %q", got)
	}

	g := newTrainedGenerator(t, []string{"x"})
	if got, want := g.Render(), "Generator: {\n  \"x\" => {\n  },\n}"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderNonStringTokens(t *testing.T) {
	g := New[int](WithSeed(1))
	_ = g.Train([]int{1, 2, 1})
	want := "Generator: {\n  \"1\" => {\n    \"2\" : 1,\n  },\n  \"2\" => {\n    \"1\" : 1,\n  },\n}"
	if got := g.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
