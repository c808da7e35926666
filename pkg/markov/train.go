package markov

import (
	"log/slog"
)

// Train records every consecutive pair of tokens as a transition and makes sure
// the final token exists as a state, even though nothing follows it. Calling Train
// again merges the new pairs into the existing counts.
//
// An empty slice fails with ErrEmptyInput. A single token is valid input: it
// becomes a state with no transitions.
func (g *Generator[T]) Train(tokens []T) error {
	if len(tokens) == 0 {
		return ErrEmptyInput
	}

	pairs := 0
	for i := 1; i < len(tokens); i++ {
		g.addTransition(tokens[i-1], tokens[i])
		pairs++
	}
	g.ensureState(tokens[len(tokens)-1])

	g.recorder.TransitionsTrained(pairs)
	g.logger.Debug("Training completed",
		slog.Int("tokens_processed", len(tokens)),
		slog.Int("transitions_added", pairs),
		slog.Int("states", len(g.order)),
		slog.Int("total_transitions", g.total),
	)
	return nil
}

// ensureState returns the state for token, creating an empty one if needed.
func (g *Generator[T]) ensureState(token T) *state[T] {
	st, ok := g.chain[token]
	if !ok {
		st = &state[T]{index: make(map[T]int)}
		g.chain[token] = st
		g.order = append(g.order, token)
	}
	return st
}

// addTransition increments the from -> to count by one.
func (g *Generator[T]) addTransition(from, to T) {
	st := g.ensureState(from)
	if i, ok := st.index[to]; ok {
		st.transitions[i].count++
	} else {
		st.index[to] = len(st.transitions)
		st.transitions = append(st.transitions, transition[T]{token: to, count: 1})
	}
	st.total++
	g.total++
}
