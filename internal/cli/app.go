// Package cli holds the glue shared by the arbor commands: configuration,
// registry setup, document loading and terminal output.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/adapters/process"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/registry"
)

// Options are the global flags.
type Options struct {
	ConfigPath string
	LogLevel   string
}

// App is the resolved environment a command runs in.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Registry *registry.Registry
}

// Setup reads the config file and applies flag overrides on top of it.
func Setup(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)

	reg, err := NewRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Logger: logger, Registry: reg}, nil
}

// NewRegistry builds the default registry plus the aliases and the Exec
// action from cfg.
func NewRegistry(cfg config.Config, logger *slog.Logger) (*registry.Registry, error) {
	reg := registry.NewDefault(registry.WithLogger(logger))

	runner := process.NewRunner(
		process.WithRegistry(cfg.Commands),
		process.WithInlineExecution(cfg.AllowInline),
		process.WithBaseDir(cfg.Dir),
		process.WithBlackboard(reg.Blackboard()),
		process.WithLogger(logger),
	)
	reg.RegisterAction(process.ActionExec, runner.Factory())

	aliases := make([]string, 0, len(cfg.Aliases))
	for alias := range cfg.Aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		if err := reg.Alias(alias, cfg.Aliases[alias]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Loader returns a loader over the app registry that logs through the app
// logger.
func (a *App) Loader(opts ...loader.Option) *loader.Loader {
	base := []loader.Option{
		loader.WithLogger(a.Logger),
		loader.WithHooks(observability.LogHooks(a.Logger)),
	}
	return loader.New(a.Registry, append(base, opts...)...)
}

// LoadFile reads and loads one document from disk.
func (a *App) LoadFile(path string) (*loader.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := a.Loader().Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
