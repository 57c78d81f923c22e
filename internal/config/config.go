// Package config loads linepos settings.
//
// Settings are layered, lowest precedence first: built-in defaults, a TOML
// or YAML file, LINEPOS_ environment variables, then explicit overrides
// (normally command-line flags). Each layer is a nested map; the merged map
// is decoded into a Config and validated.
//
//	[position]
//	tabWidth = 8
//
//	[output]
//	format = "json"
//	color = "never"
//
//	[logging]
//	level = "debug"
package config

import (
	"fmt"
	"math"
	"slices"
)

// Setting paths.
const (
	KeyTabWidth = "position.tabWidth"
	KeyFormat   = "output.format"
	KeyColor    = "output.color"
	KeyLogLevel = "logging.level"
	KeyWatch    = "watch.enabled"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	formats   = []string{FormatText, FormatJSON}
	colors    = []string{ColorAuto, ColorAlways, ColorNever}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Config holds the resolved settings.
type Config struct {
	// TabWidth is the tab stop distance used for columns and snippets.
	TabWidth int
	// Format selects text or JSON output.
	Format string
	// Color selects when carets are colored.
	Color string
	// LogLevel is the minimum level logged.
	LogLevel string
	// Watch re-reports whenever an input file changes.
	Watch bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabWidth: 4,
		Format:   FormatText,
		Color:    ColorAuto,
		LogLevel: "info",
	}
}

// Map returns c as a nested settings map.
func (c Config) Map() map[string]any {
	m := make(map[string]any)
	SetByPath(m, KeyTabWidth, c.TabWidth)
	SetByPath(m, KeyFormat, c.Format)
	SetByPath(m, KeyColor, c.Color)
	SetByPath(m, KeyLogLevel, c.LogLevel)
	SetByPath(m, KeyWatch, c.Watch)
	return m
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.TabWidth < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidTabWidth, c.TabWidth)
	}
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("%w: %q (must be text or json)", ErrInvalidFormat, c.Format)
	}
	if !slices.Contains(colors, c.Color) {
		return fmt.Errorf("%w: %q (must be auto, always, or never)", ErrInvalidColor, c.Color)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("%w: %q (must be debug, info, warn, or error)", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// FromMap decodes a settings map over the defaults. Unknown keys are
// ignored.
func FromMap(m map[string]any) (Config, error) {
	c := Default()
	if v, ok := GetByPath(m, KeyTabWidth); ok {
		n, err := toInt(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", KeyTabWidth, err)
		}
		c.TabWidth = n
	}
	for key, dst := range map[string]*string{
		KeyFormat:   &c.Format,
		KeyColor:    &c.Color,
		KeyLogLevel: &c.LogLevel,
	} {
		v, ok := GetByPath(m, key)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return c, fmt.Errorf("%s: %w: expected string, got %T", key, ErrTypeMismatch, v)
		}
		*dst = s
	}
	if v, ok := GetByPath(m, KeyWatch); ok {
		b, ok := v.(bool)
		if !ok {
			return c, fmt.Errorf("%s: %w: expected bool, got %T", KeyWatch, ErrTypeMismatch, v)
		}
		c.Watch = b
	}
	return c, nil
}

// toInt accepts the integer shapes the TOML, YAML and env loaders produce.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %v is not a whole number", ErrTypeMismatch, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", ErrTypeMismatch, v)
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs        FileSystem
	env       Loader
	overrides map[string]any
}

// WithFS reads the config file through fsys.
func WithFS(fsys FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment layer. A nil loader disables it.
func WithEnv(l Loader) Option {
	return func(o *loadOptions) {
		o.env = l
	}
}

// WithOverride sets path on the top layer.
func WithOverride(path string, value any) Option {
	return func(o *loadOptions) {
		SetByPath(o.overrides, path, value)
	}
}

// Load resolves the settings. An empty path skips the file layer; a path
// that does not exist is treated as an empty file.
func Load(path string, opts ...Option) (Config, error) {
	o := loadOptions{
		fs:        DefaultFS(),
		env:       NewEnvLoader(EnvPrefix),
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := Default().Map()

	if path != "" {
		fl, err := NewFileLoader(o.fs, path)
		if err != nil {
			return Config{}, err
		}
		file, err := fl.Load()
		if err != nil {
			return Config{}, err
		}
		merged = DeepMerge(merged, file)
	}

	if o.env != nil {
		env, err := o.env.Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = DeepMerge(merged, env)
	}

	merged = DeepMerge(merged, o.overrides)

	c, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
