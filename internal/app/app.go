// Package app runs linepos over a set of files.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"golang.org/x/term"

	"github.com/dshills/linepos/internal/config"
	"github.com/dshills/linepos/internal/diag"
	"github.com/dshills/linepos/internal/locate"
	"github.com/dshills/linepos/internal/logging"
	"github.com/dshills/linepos/internal/watch"
)

// Options configures an Application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Files are the inputs to report on.
	Files []string

	// Offsets are byte offsets to locate in every file.
	Offsets []int

	// Pattern is a regular expression whose matches are located.
	Pattern string

	// Overrides are settings given on the command line, keyed by path.
	Overrides map[string]any

	// Stdout receives reports. Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives logs. Defaults to os.Stderr.
	Stderr io.Writer
}

// Application reports locations in files.
type Application struct {
	cfg      config.Config
	logger   *logging.Logger
	out      io.Writer
	color    bool
	files    []string
	offsets  []int
	pattern  *regexp.Regexp
	readFile func(string) ([]byte, error)
}

// New validates opts and resolves configuration.
func New(opts Options) (*Application, error) {
	if len(opts.Files) == 0 {
		return nil, ErrNoFiles
	}
	if len(opts.Offsets) == 0 && opts.Pattern == "" {
		return nil, ErrNoTargets
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	loadOpts := make([]config.Option, 0, len(opts.Overrides))
	for path, v := range opts.Overrides {
		loadOpts = append(loadOpts, config.WithOverride(path, v))
	}
	cfg, err := config.Load(opts.ConfigPath, loadOpts...)
	if err != nil {
		return nil, NewOperationError("load config", opts.ConfigPath, err)
	}

	app := &Application{
		cfg:      cfg,
		out:      opts.Stdout,
		files:    opts.Files,
		offsets:  opts.Offsets,
		readFile: os.ReadFile,
		logger: logging.New(logging.Config{
			Level:  logging.ParseLevel(cfg.LogLevel),
			Output: opts.Stderr,
		}),
	}
	app.color = useColor(cfg.Color, opts.Stdout)

	if opts.Pattern != "" {
		re, err := regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		app.pattern = re
	}

	app.logger.Debug("config: tab width %d, format %s, color %v", cfg.TabWidth, cfg.Format, app.color)
	return app, nil
}

// Config returns the resolved configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Logger returns the application's logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run reports on every file. In watch mode it then reports again on each
// file as it changes until ctx is done.
func (app *Application) Run(ctx context.Context) error {
	var errs []error
	for _, path := range app.files {
		if err := app.Report(path); err != nil {
			errs = append(errs, err)
		}
	}
	if !app.cfg.Watch {
		return errors.Join(errs...)
	}

	for _, err := range errs {
		app.logger.Error("%v", err)
	}

	w, err := watch.New(app.files, watch.WithLogger(app.logger.WithComponent("watch")))
	if err != nil {
		return NewOperationError("watch", "", err)
	}
	defer w.Close()

	app.logger.Info("watching %d file(s)", len(app.files))
	return w.Run(ctx, func(path string) {
		if err := app.Report(path); err != nil {
			app.logger.Error("%v", err)
		}
	})
}

// Report locates the configured targets in one file and writes them out.
func (app *Application) Report(path string) error {
	content, err := app.readFile(path)
	if err != nil {
		return NewOperationError("read", path, err)
	}

	snippets, err := app.locate(path, content)
	if err != nil {
		return NewOperationError("locate", path, err)
	}
	app.logger.WithField("file", path).Debug("%d location(s)", len(snippets))

	for _, s := range snippets {
		if err := app.write(s); err != nil {
			return NewOperationError("write", path, err)
		}
	}
	return nil
}

func (app *Application) locate(path string, content []byte) ([]diag.Snippet, error) {
	var snippets []diag.Snippet
	if len(app.offsets) > 0 {
		found, err := locate.Offsets(path, content, app.offsets, app.cfg.TabWidth)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, found...)
	}
	if app.pattern != nil {
		found, err := locate.Matches(path, content, app.pattern, app.cfg.TabWidth)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, found...)
	}
	slices.SortStableFunc(snippets, func(a, b diag.Snippet) int {
		return a.Offset - b.Offset
	})
	return snippets, nil
}

func (app *Application) write(s diag.Snippet) error {
	if app.cfg.Format == config.FormatJSON {
		line, err := diag.JSON(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(app.out, line)
		return err
	}
	return diag.Render(app.out, s, diag.Options{
		TabWidth: app.cfg.TabWidth,
		Color:    app.color,
	})
}
