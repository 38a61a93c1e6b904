package arbor

import (
	"log/slog"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/record"
	"github.com/aretw0/arbor/pkg/registry"
)

type settings struct {
	registry *registry.Registry
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option configures Load.
type Option func(*settings)

// WithRegistry loads against reg instead of registry.Default().
func WithRegistry(reg *registry.Registry) Option {
	return func(s *settings) {
		s.registry = reg
	}
}

// WithLogger sets the loader logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithHooks registers load observers.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// NewLoader builds the loader Load uses.
func NewLoader(opts ...Option) *loader.Loader {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	var lopts []loader.Option
	if s.logger != nil {
		lopts = append(lopts, loader.WithLogger(s.logger))
	}
	lopts = append(lopts, loader.WithHooks(s.hooks))
	return loader.New(s.registry, lopts...)
}

// Load parses text and returns the linked object graph.
func Load(text string, opts ...Option) (*loader.Result, error) {
	return NewLoader(opts...).Load(text)
}

// LoadRecords links records that were built in code, e.g. with pkg/dsl.
func LoadRecords(records []*record.Record, opts ...Option) (*loader.Result, error) {
	return NewLoader(opts...).LoadRecords(records...)
}
