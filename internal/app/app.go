package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/brewmaster/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logW    io.Writer
	stdin   io.Reader
	logger  *slog.Logger
	config  *Config
	targets []Target
}

// Option customizes an App.
type Option func(*App)

// WithLogWriter sends logs to w instead of standard error.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) { a.logW = w }
}

// WithStdin sets the reader used for the "-" script path.
func WithStdin(r io.Reader) Option {
	return func(a *App) { a.stdin = r }
}

// WithTargets replaces the core targets.
func WithTargets(targets ...Target) Option {
	return func(a *App) { a.targets = targets }
}

// NewApp is the constructor for the main application. Reports are written to
// outW; logs go to standard error unless WithLogWriter says otherwise.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	a := &App{
		outW:   outW,
		logW:   os.Stderr,
		stdin:  os.Stdin,
		config: cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, a.logW)
	a.logger.Debug("Logger configured successfully.")

	if a.targets == nil {
		targets, err := CoreTargets()
		if err != nil {
			return nil, err
		}
		a.targets = targets
	}
	if len(a.targets) == 0 {
		return nil, errors.New("no targets configured")
	}
	a.logger.Debug("Targets registered.", "count", len(a.targets))
	return a, nil
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// target selects the configured target.
func (a *App) target() (Target, error) {
	if a.config.Target == "" {
		return a.targets[0], nil
	}
	names := make([]string, 0, len(a.targets))
	for _, t := range a.targets {
		if t.Name == a.config.Target {
			return t, nil
		}
		names = append(names, t.Name)
	}
	return Target{}, fmt.Errorf("unknown target %q: must be one of %v", a.config.Target, names)
}
