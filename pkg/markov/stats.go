package markov

import (
	"fmt"
	"strings"
)

// Stats holds aggregated statistics for a trained Generator.
type Stats struct {
	States         int // The number of distinct tokens in the model
	Transitions    int // The number of unique from->to links
	TotalFrequency int // The sum of all link counts; the total number of trained transitions
	DeadEnds       int // The number of states with no outgoing transitions
}

// Stats returns a snapshot of the model's size.
func (g *Generator[T]) Stats() Stats {
	s := Stats{
		States:         len(g.order),
		TotalFrequency: g.total,
	}
	for _, token := range g.order {
		n := len(g.chain[token].transitions)
		s.Transitions += n
		if n == 0 {
			s.DeadEnds++
		}
	}
	return s
}

// States returns every state in the order it was first seen during training.
func (g *Generator[T]) States() []T {
	out := make([]T, len(g.order))
	copy(out, g.order)
	return out
}

// Transitions returns a copy of the counts of every token observed after from.
// The map is empty, not nil, for a dead end.
func (g *Generator[T]) Transitions(from T) (map[T]int, error) {
	st, ok := g.chain[from]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownState, from)
	}
	out := make(map[T]int, len(st.transitions))
	for _, tr := range st.transitions {
		out[tr.token] = tr.count
	}
	return out, nil
}

// TotalTransitions returns the number of pairs recorded across all Train calls.
func (g *Generator[T]) TotalTransitions() int {
	return g.total
}

// Render dumps the whole model for debugging, one block per state:
//
//	Generator: {
//	  "a" => {
//	    "b" : 2,
//	  },
//	}
//
// States and transitions appear in first-seen order, so the output is stable
// for a given training input.
func (g *Generator[T]) Render() string {
	var b strings.Builder
	b.WriteString("Generator: {\n")
	for _, token := range g.order {
		fmt.Fprintf(&b, "  \"%v\" => {\n", token)
		for _, tr := range g.chain[token].transitions {
			fmt.Fprintf(&b, "    \"%v\" : %d,\n", tr.token, tr.count)
		}
		b.WriteString("  },\n")
	}
	b.WriteString("}")
	return b.String()
}

// String implements fmt.Stringer using Render.
func (g *Generator[T]) String() string {
	return g.Render()
}
