package markov

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
)

// Stream returns a lazy sequence of n tokens starting from a random state.
// Each call to Stream begins a new walk; a sequence is not restartable once
// partially consumed.
//
// When the walk reaches a dead end (or, under WeightGlobal, exhausts its draws)
// it restarts from a new random state. The restart state is itself emitted, so
// every step emits exactly one token and the walk always ends after n tokens.
// Any other failure is yielded once as an error, ending the sequence. A negative
// n yields ErrInvalidLength.
func (g *Generator[T]) Stream(n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if n < 0 {
			yield(zero, ErrInvalidLength)
			return
		}
		if n == 0 {
			return
		}
		start, err := g.SampleStart()
		if err != nil {
			yield(zero, err)
			return
		}
		g.walk(start, n, yield)
	}
}

// StreamFrom is like Stream but the first token is start, which must be a state.
func (g *Generator[T]) StreamFrom(start T, n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if n < 0 {
			yield(zero, ErrInvalidLength)
			return
		}
		if n == 0 {
			return
		}
		if _, ok := g.chain[start]; !ok {
			yield(zero, fmt.Errorf("%w: %v", ErrUnknownState, start))
			return
		}
		g.walk(start, n, yield)
	}
}

// walk contains the main loop for generating a chain of n tokens from current.
func (g *Generator[T]) walk(current T, n int, yield func(T, error) bool) {
	var zero T
	restarts := 0
	for emitted := 0; emitted < n; emitted++ {
		if emitted > 0 {
			next, err := g.SampleNext(current)
			switch {
			case err == nil:
				current = next
			case errors.Is(err, ErrDeadEnd), errors.Is(err, ErrDrawsExhausted):
				cause := restartCause(err)
				restarts++
				g.recorder.Restarted(cause)
				g.logger.Debug("Generation restarted",
					slog.String("cause", cause),
					slog.String("last_state", fmt.Sprint(current)),
					slog.Int("generated_length", emitted),
				)
				if current, err = g.SampleStart(); err != nil {
					yield(zero, err)
					return
				}
			default:
				yield(zero, err)
				return
			}
		}
		g.recorder.TokenEmitted()
		if !yield(current, nil) {
			return
		}
	}
	g.logger.Debug("Generation terminated by reaching length",
		slog.Int("max_length", n),
		slog.Int("restarts", restarts),
	)
}

func restartCause(err error) string {
	if errors.Is(err, ErrDrawsExhausted) {
		return RestartDrawsExhausted
	}
	return RestartDeadEnd
}
