package markov

import "errors"

var (
	// ErrEmptyInput is returned by Train when given no tokens.
	ErrEmptyInput = errors.New("no tokens to train on")
	// ErrEmptyModel is returned when sampling from a Generator that has no states.
	ErrEmptyModel = errors.New("model has no states")
	// ErrUnknownState is returned when a token was never seen during training.
	ErrUnknownState = errors.New("unknown state")
	// ErrDeadEnd is returned by SampleNext for a state with no outgoing transitions.
	ErrDeadEnd = errors.New("state has no outgoing transitions")
	// ErrDrawsExhausted is returned by SampleNext under WeightGlobal when no
	// transition matched within the configured number of draws.
	ErrDrawsExhausted = errors.New("no transition matched within the draw limit")
	// ErrInvalidLength is returned when a negative generation length is requested.
	ErrInvalidLength = errors.New("generation length must not be negative")
)
