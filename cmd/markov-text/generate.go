package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/CTAG07/markov-text/pkg/markov"
	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
)

// stdio is the path that means stdin for inputs and stdout for outputs.
const stdio = "-"

// GenerateCmd trains a chain on the input and writes generated text.
type GenerateCmd struct {
	Input           string `short:"i" required:"" env:"MARKOV_TEXT_INPUT" help:"Input text file, or - for stdin."`
	Output          string `short:"o" required:"" env:"MARKOV_TEXT_OUTPUT" help:"Output file, or - for stdout."`
	Size            int    `short:"s" default:"${size}" env:"MARKOV_TEXT_SIZE" help:"Number of tokens to generate."`
	Seed            uint64 `default:"${seed}" env:"MARKOV_TEXT_SEED" help:"Random seed; 0 picks one."`
	SkipEmpty       bool   `name:"skip-empty" default:"${skip_empty}" env:"MARKOV_TEXT_SKIP_EMPTY" help:"Drop empty tokens produced by repeated separators."`
	Weighting       string `enum:"local,global" default:"${weighting}" env:"MARKOV_TEXT_WEIGHTING" help:"Transition weighting: local (exact) or global (compat)."`
	MaxDraws        int    `name:"max-draws" default:"${max_draws}" env:"MARKOV_TEXT_MAX_DRAWS" help:"Draw limit per step under global weighting."`
	Journal         string `default:"${journal}" env:"MARKOV_TEXT_JOURNAL" help:"SQLite journal to record the run in."`
	MetricsTextfile string `name:"metrics-textfile" default:"${metrics_textfile}" env:"MARKOV_TEXT_METRICS_TEXTFILE" help:"Write Prometheus metrics to this file."`
}

// Validate is called by kong after parsing.
func (c *GenerateCmd) Validate() error {
	if c.Size < 0 {
		return fmt.Errorf("--size must not be negative, got %d", c.Size)
	}
	if c.MaxDraws < 1 {
		return fmt.Errorf("--max-draws must be at least 1, got %d", c.MaxDraws)
	}
	return nil
}

func (c *GenerateCmd) Run(g *Global) error {
	started := time.Now()
	metrics := newRunMetrics()

	seed := c.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	weighting, err := markov.ParseWeighting(c.Weighting)
	if err != nil {
		return err
	}
	logger := g.Logger.With(slog.String("input", c.Input))

	stage := time.Now()
	tokens, size, err := readTokens(c.Input, g.Stdin, c.SkipEmpty)
	if err != nil {
		return err
	}
	metrics.observeStage("read", time.Since(stage))
	logger.Debug("Input tokenized",
		slog.String("size", humanize.Bytes(uint64(size))),
		slog.Int("tokens", len(tokens)),
	)
	if err = g.Ctx.Err(); err != nil {
		return err
	}

	gen := markov.New[string](
		markov.WithSeed(seed),
		markov.WithWeighting(weighting),
		markov.WithMaxDraws(c.MaxDraws),
		markov.WithRecorder(metrics),
	)
	gen.SetLogger(logger)

	stage = time.Now()
	if err = gen.Train(tokens); err != nil {
		return fmt.Errorf("failed to train on %s: %w", c.Input, err)
	}
	metrics.observeStage("train", time.Since(stage))
	stats := gen.Stats()
	metrics.modelStates.Set(float64(stats.States))
	if err = g.Ctx.Err(); err != nil {
		return err
	}

	stage = time.Now()
	generated, err := gen.Generate(c.Size)
	if err != nil {
		return fmt.Errorf("failed to generate: %w", err)
	}
	text := markov.Join(markov.NewDefaultTokenizer(), generated)
	metrics.observeStage("generate", time.Since(stage))
	if err = g.Ctx.Err(); err != nil {
		return err
	}

	stage = time.Now()
	if err = writeOutput(c.Output, g.Stdout, text); err != nil {
		return err
	}
	metrics.observeStage("write", time.Since(stage))

	if c.MetricsTextfile != "" {
		if err = metrics.writeTextfile(c.MetricsTextfile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	duration := time.Since(started)
	runID := ""
	if c.Journal != "" {
		runID, err = c.record(g, RunRecord{
			StartedAt:        started,
			InputPath:        c.Input,
			OutputPath:       c.Output,
			Size:             c.Size,
			Seed:             seed,
			Weighting:        weighting.String(),
			InputTokens:      len(tokens),
			States:           stats.States,
			TotalTransitions: stats.TotalFrequency,
			Generated:        len(generated),
			Restarts:         metrics.restartCount,
			Duration:         duration,
		})
		if err != nil {
			return err
		}
	}

	logger.Info("Generated text",
		slog.String("output", c.Output),
		slog.Int("tokens", len(generated)),
		slog.Int("states", stats.States),
		slog.Int("restarts", metrics.restartCount),
		slog.Uint64("seed", seed),
		slog.String("weighting", weighting.String()),
		slog.String("run_id", runID),
		slog.Duration("duration", duration),
	)
	return nil
}

func (c *GenerateCmd) record(g *Global, rec RunRecord) (string, error) {
	journal, err := OpenJournal(c.Journal)
	if err != nil {
		return "", err
	}
	defer func(journal *Journal) {
		_ = journal.Close()
	}(journal)
	return journal.Record(g.Ctx, rec)
}

// readTokens reads the whole input and tokenizes it. It returns the tokens and
// the input size in bytes.
func readTokens(path string, stdin io.Reader, skipEmpty bool) ([]string, int, error) {
	var (
		data []byte
		err  error
	)
	if path == stdio {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read input: %w", err)
	}

	tokenizer := markov.NewDefaultTokenizer(markov.WithSkipEmpty(skipEmpty))
	tokens, err := markov.Tokenize(tokenizer, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	if len(tokens) == 0 {
		return nil, len(data), fmt.Errorf("input %s: %w", path, markov.ErrEmptyInput)
	}
	return tokens, len(data), nil
}

func writeOutput(path string, stdout io.Writer, text string) error {
	if path == stdio {
		if _, err := io.WriteString(stdout, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := atomic.WriteFile(path, bytes.NewReader([]byte(text))); err != nil {
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}
	return nil
}
