package markov

import (
	"io"
	"log/slog"
	"math/rand/v2"
)

// defaultMaxDraws bounds the number of threshold draws made by WeightGlobal
// before SampleNext gives up on a state.
const defaultMaxDraws = 64

// transition is a single weighted edge leaving a state.
type transition[T comparable] struct {
	token T
	count int
}

// state holds the outgoing transitions of one token, in the order they were
// first observed, along with an index for O(1) lookups and their summed count.
type state[T comparable] struct {
	transitions []transition[T]
	index       map[T]int
	total       int
}

// Generator is a first-order Markov chain over tokens of any comparable type.
// It owns the transition model and its pseudo-random source.
//
// A Generator is not safe for concurrent use. Train mutates the model and every
// sampling call advances the random source, so callers sharing a Generator across
// goroutines must serialize access themselves, for example with a sync.Mutex.
type Generator[T comparable] struct {
	chain     map[T]*state[T]
	order     []T // states in first-seen order
	total     int
	rng       *rand.Rand
	weighting Weighting
	maxDraws  int
	recorder  Recorder
	logger    *slog.Logger
}

// options holds the construction parameters shared by every Generator instantiation.
type options struct {
	source    rand.Source
	weighting Weighting
	maxDraws  int
	recorder  Recorder
}

// Option configures a Generator at construction time.
type Option func(*options)

// WithSeed seeds the generator's random source. Two generators trained on the
// same tokens with the same seed produce the same output.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.source = rand.NewPCG(seed, seed) }
}

// WithSource sets the random source directly. It takes precedence over any
// earlier WithSeed.
func WithSource(src rand.Source) Option {
	return func(o *options) { o.source = src }
}

// WithWeighting selects how SampleNext turns transition counts into a choice.
// Default: WeightLocal
func WithWeighting(w Weighting) Option {
	return func(o *options) { o.weighting = w }
}

// WithMaxDraws sets how many thresholds WeightGlobal draws before failing with
// ErrDrawsExhausted. Values below 1 are ignored.
// Default: 64
func WithMaxDraws(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDraws = n
		}
	}
}

// WithRecorder attaches a Recorder that is notified of training and generation events.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// New creates an empty Generator. Without WithSeed or WithSource the random
// source is seeded from the runtime's global generator.
func New[T comparable](opts ...Option) *Generator[T] {
	o := &options{
		weighting: WeightLocal,
		maxDraws:  defaultMaxDraws,
		recorder:  NoopRecorder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.source == nil {
		o.source = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return &Generator[T]{
		chain:     make(map[T]*state[T]),
		rng:       rand.New(o.source),
		weighting: o.weighting,
		maxDraws:  o.maxDraws,
		recorder:  o.recorder,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator[T]) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Weighting returns the sampling mode the Generator was built with.
func (g *Generator[T]) Weighting() Weighting {
	return g.weighting
}
