package main

import (
	"fmt"

	"github.com/CTAG07/markov-text/pkg/markov"
)

// InspectCmd prints the model trained from the input without generating.
type InspectCmd struct {
	Input     string `short:"i" required:"" env:"MARKOV_TEXT_INPUT" help:"Input text file, or - for stdin."`
	SkipEmpty bool   `name:"skip-empty" default:"${skip_empty}" env:"MARKOV_TEXT_SKIP_EMPTY" help:"Drop empty tokens produced by repeated separators."`
	StatsOnly bool   `name:"stats-only" help:"Print only the summary, not every transition."`
}

func (c *InspectCmd) Run(g *Global) error {
	tokens, _, err := readTokens(c.Input, g.Stdin, c.SkipEmpty)
	if err != nil {
		return err
	}

	gen := markov.New[string]()
	gen.SetLogger(g.Logger)
	if err = gen.Train(tokens); err != nil {
		return fmt.Errorf("failed to train on %s: %w", c.Input, err)
	}

	if !c.StatsOnly {
		if _, err = fmt.Fprintln(g.Stdout, gen.Render()); err != nil {
			return err
		}
	}
	stats := gen.Stats()
	_, err = fmt.Fprintf(g.Stdout, "states: %d\ntransitions: %d\ntotal frequency: %d\ndead ends: %d\n",
		stats.States, stats.Transitions, stats.TotalFrequency, stats.DeadEnds)
	return err
}
