package markov

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"
)

// Weighting selects how SampleNext converts transition counts into a choice.
type Weighting int

const (
	// WeightLocal draws proportionally to each transition's share of its own
	// state's total. This is standard Markov sampling.
	WeightLocal Weighting = iota
	// WeightGlobal draws a threshold in [1, TotalTransitions()] and returns the
	// first transition, in first-seen order, whose count reaches it, redrawing up
	// to the configured maximum. High-count transitions are favoured, and a
	// state whose counts are all small may fail to match at all.
	WeightGlobal
)

// String returns the name used on the command line and in config files.
func (w Weighting) String() string {
	switch w {
	case WeightLocal:
		return "local"
	case WeightGlobal:
		return "global"
	default:
		return fmt.Sprintf("Weighting(%d)", int(w))
	}
}

// ParseWeighting is the inverse of Weighting.String.
func ParseWeighting(s string) (Weighting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local":
		return WeightLocal, nil
	case "global":
		return WeightGlobal, nil
	default:
		return 0, fmt.Errorf("unknown weighting %q (want local or global)", s)
	}
}

// SampleStart returns a state chosen uniformly at random. Repeated calls are
// independent and may return the same state.
func (g *Generator[T]) SampleStart() (T, error) {
	var zero T
	if len(g.order) == 0 {
		return zero, ErrEmptyModel
	}
	return g.order[g.rng.IntN(len(g.order))], nil
}

// SampleNext returns a token that followed current in the training data, chosen
// according to the Generator's Weighting. It fails with ErrUnknownState if current
// is not a state and with ErrDeadEnd if current has no outgoing transitions.
//
// Transitions are scanned in the order they were first observed during training,
// so a fixed seed and identical training input always produce the same choices.
func (g *Generator[T]) SampleNext(current T) (T, error) {
	var zero T
	st, ok := g.chain[current]
	if !ok {
		return zero, fmt.Errorf("%w: %v", ErrUnknownState, current)
	}
	if len(st.transitions) == 0 {
		return zero, fmt.Errorf("%w: %v", ErrDeadEnd, current)
	}

	if g.weighting == WeightGlobal {
		return g.chooseGlobal(current, st)
	}
	return g.chooseLocal(st), nil
}

// chooseLocal is a standard weighted random selection over one state.
func (g *Generator[T]) chooseLocal(st *state[T]) T {
	randChoice := g.rng.IntN(st.total)
	for _, tr := range st.transitions {
		randChoice -= tr.count
		if randChoice < 0 {
			return tr.token
		}
	}
	// Unreachable while st.total equals the sum of counts.
	return st.transitions[len(st.transitions)-1].token
}

// chooseGlobal draws thresholds against the model-wide total until one of the
// state's transitions has a count at least that large.
func (g *Generator[T]) chooseGlobal(current T, st *state[T]) (T, error) {
	var zero T
	for range g.maxDraws {
		threshold := 1 + g.rng.IntN(g.total)
		for _, tr := range st.transitions {
			if tr.count >= threshold {
				return tr.token, nil
			}
		}
	}
	g.logger.Debug("Draw limit reached",
		slog.String("state", fmt.Sprint(current)),
		slog.Int("max_draws", g.maxDraws),
		slog.Int("local_total", st.total),
		slog.Int("total_transitions", g.total),
	)
	return zero, fmt.Errorf("%w: %v", ErrDrawsExhausted, current)
}

// Generate produces n tokens starting from a random state. See Stream for how
// dead ends are handled.
func (g *Generator[T]) Generate(n int) ([]T, error) {
	return collect(n, g.Stream(n))
}

// GenerateFrom produces n tokens, the first of which is start.
func (g *Generator[T]) GenerateFrom(start T, n int) ([]T, error) {
	return collect(n, g.StreamFrom(start, n))
}

// maxPrealloc caps the capacity collect reserves up front; longer walks grow
// the slice as tokens arrive.
const maxPrealloc = 1 << 16

func collect[T any](n int, seq iter.Seq2[T, error]) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidLength
	}
	out := make([]T, 0, min(n, maxPrealloc))
	for token, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, token)
	}
	return out, nil
}
