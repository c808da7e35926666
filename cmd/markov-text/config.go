package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/natefinch/atomic"
)

// defaultConfigPath is read automatically when present in the working directory.
const defaultConfigPath = "markov-text.json"

// Config mirrors the generate flags. Keys are the flag names in snake_case, which
// is the form kong's JSON resolver looks up.
type Config struct {
	Size            int    `json:"size"`
	Seed            uint64 `json:"seed"`
	SkipEmpty       bool   `json:"skip_empty"`
	Weighting       string `json:"weighting"`
	MaxDraws        int    `json:"max_draws"`
	LogLevel        string `json:"log_level"`
	Journal         string `json:"journal"`
	MetricsTextfile string `json:"metrics_textfile"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Size:            100,
		Seed:            0,
		SkipEmpty:       false,
		Weighting:       "local",
		MaxDraws:        64,
		LogLevel:        "info",
		Journal:         "",
		MetricsTextfile: "",
	}
}

// vars exposes the configuration as kong interpolation variables so that flag
// defaults have a single source.
func (c *Config) vars() kong.Vars {
	return kong.Vars{
		"size":             strconv.Itoa(c.Size),
		"seed":             strconv.FormatUint(c.Seed, 10),
		"skip_empty":       strconv.FormatBool(c.SkipEmpty),
		"weighting":        c.Weighting,
		"max_draws":        strconv.Itoa(c.MaxDraws),
		"log_level":        c.LogLevel,
		"journal":          c.Journal,
		"metrics_textfile": c.MetricsTextfile,
		"config_path":      defaultConfigPath,
		"version":          fmt.Sprintf("markov-text %s (commit %s, built %s)", Version, Commit, BuildDate),
	}
}

// envFirst wraps a configuration loader so that a flag whose environment
// variable is set is never taken from the file. Kong applies env vars as flag
// defaults before resolvers run, so without this the file would win.
func envFirst(loader kong.ConfigurationLoader) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		resolver, err := loader(r)
		if err != nil {
			return nil, err
		}
		return envFirstResolver{resolver}, nil
	}
}

type envFirstResolver struct {
	kong.Resolver
}

func (r envFirstResolver) Resolve(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
	for _, env := range flag.Envs {
		if _, ok := os.LookupEnv(env); ok {
			return nil, nil
		}
	}
	return r.Resolver.Resolve(kctx, parent, flag)
}

// writeConfigFile stores cfg as indented JSON at path. An existing file is only
// replaced when force is set.
func writeConfigFile(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
