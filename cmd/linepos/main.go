// Package main is the entry point for linepos.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dshills/linepos/internal/app"
	"github.com/dshills/linepos/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errExit stops run after -help or -version without reporting an error.
var errExit = errors.New("exit")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stdout, stderr)
	if errors.Is(err, errExit) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	opts.Stdout = stdout
	opts.Stderr = stderr

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		if errors.Is(err, app.ErrNoFiles) || errors.Is(err, app.ErrNoTargets) || errors.Is(err, app.ErrInvalidPattern) {
			return 2
		}
		return 1
	}

	// Handle signals for graceful shutdown of watch mode
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// offsetList collects repeated -offset flags.
type offsetList []int

func (o *offsetList) String() string {
	parts := make([]string, len(*o))
	for i, v := range *o {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (o *offsetList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid offset %q", part)
		}
		if n < 0 {
			return fmt.Errorf("offset %d is negative", n)
		}
		*o = append(*o, n)
	}
	return nil
}

func parseFlags(args []string, stdout, stderr io.Writer) (app.Options, error) {
	var opts app.Options
	var offsets offsetList
	var showVersion, showHelp, watch bool
	var tabWidth int
	var format, color, logLevel string

	fs := flag.NewFlagSet("linepos", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Var(&offsets, "offset", "Byte offset to locate (repeatable, or comma separated)")
	fs.StringVar(&opts.Pattern, "match", "", "Locate every match of a regular expression")
	fs.IntVar(&tabWidth, "tab-width", config.Default().TabWidth, "Columns per tab stop")
	fs.StringVar(&format, "format", config.FormatText, "Output format (text, json)")
	fs.StringVar(&color, "color", config.ColorAuto, "Color the caret (auto, always, never)")
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&watch, "watch", false, "Report again whenever a file changes")
	fs.BoolVar(&watch, "w", false, "Report again whenever a file changes (shorthand)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "linepos - report line and column for offsets in text files\n\n")
		fmt.Fprintf(stderr, "Usage: linepos [options] file...\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  linepos -offset 120 main.go            Show line and column of byte 120\n")
		fmt.Fprintf(stderr, "  linepos -offset 10,42 a.txt b.txt      Several offsets in several files\n")
		fmt.Fprintf(stderr, "  linepos -match 'TODO' -format json *.go  Locate every TODO as JSON\n")
		fmt.Fprintf(stderr, "  linepos -w -match 'panic\\(' main.go    Keep reporting as the file changes\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, errExit
		}
		return opts, err
	}

	if showHelp {
		fs.Usage()
		return opts, errExit
	}

	if showVersion {
		fmt.Fprintf(stdout, "linepos %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, errExit
	}

	// Validate log level
	switch logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", logLevel)
	}

	// Only flags given on the command line override the config file.
	opts.Overrides = make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tab-width":
			opts.Overrides[config.KeyTabWidth] = tabWidth
		case "format":
			opts.Overrides[config.KeyFormat] = format
		case "color":
			opts.Overrides[config.KeyColor] = color
		case "log-level":
			opts.Overrides[config.KeyLogLevel] = logLevel
		case "watch", "w":
			opts.Overrides[config.KeyWatch] = watch
		}
	})

	opts.Offsets = offsets
	opts.Files = fs.Args()
	return opts, nil
}
