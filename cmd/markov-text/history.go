package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"
)

var errNoJournal = errors.New("no journal configured (use --journal)")

// HistoryCmd lists runs recorded by generate --journal.
type HistoryCmd struct {
	Journal string `default:"${journal}" env:"MARKOV_TEXT_JOURNAL" help:"SQLite journal to read."`
	Limit   int    `short:"n" default:"20" help:"Maximum number of runs to list."`
}

func (c *HistoryCmd) Validate() error {
	if c.Limit < 1 {
		return fmt.Errorf("--limit must be at least 1, got %d", c.Limit)
	}
	return nil
}

func (c *HistoryCmd) Run(g *Global) error {
	if c.Journal == "" {
		return errNoJournal
	}
	// Opening would create an empty database; a typo should be an error instead.
	if _, err := os.Stat(c.Journal); err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	journal, err := OpenJournal(c.Journal)
	if err != nil {
		return err
	}
	defer func(journal *Journal) {
		_ = journal.Close()
	}(journal)

	runs, err := journal.List(g.Ctx, c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := tabwriter.NewWriter(g.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RUN ID\tSTARTED\tINPUT\tOUTPUT\tSIZE\tSEED\tWEIGHTING\tSTATES\tRESTARTS\tDURATION")
	for _, r := range runs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%d\t%d\t%s\n",
			r.ID,
			r.StartedAt.Format(time.DateTime),
			r.InputPath,
			r.OutputPath,
			r.Size,
			r.Seed,
			r.Weighting,
			r.States,
			r.Restarts,
			r.Duration,
		)
	}
	return w.Flush()
}
