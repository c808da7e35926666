package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
)

// Global carries process-level dependencies into every command's Run method.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// CLI is the root command line definition.
type CLI struct {
	Config   kong.ConfigFlag  `short:"c" help:"Load flag defaults from a JSON file."`
	LogLevel string           `name:"log-level" enum:"debug,info,warn,error" default:"${log_level}" env:"MARKOV_TEXT_LOG_LEVEL" help:"Log verbosity."`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit."`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate text from a Markov chain trained on the input (default)."`
	Inspect  InspectCmd  `cmd:"" help:"Print the transition model built from the input."`
	History  HistoryCmd  `cmd:"" help:"List generation runs recorded in a journal."`
	Init     InitCmd     `cmd:"" help:"Write a configuration file with the default settings."`
}

// run is the testable body of main. It parses args, sets up logging and runs
// the selected command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("markov-text"),
		kong.Description("Random text generator."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Configuration(envFirst(kong.JSON), defaultConfigPath),
		DefaultConfig().vars(),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args[1:])
	if err != nil {
		return err
	}

	logger := newLogger(stderr, parseLogLevel(cli.LogLevel))
	return kctx.Run(&Global{
		Ctx:    ctx,
		Logger: logger,
		Stdin:  stdin,
		Stdout: stdout,
	})
}
