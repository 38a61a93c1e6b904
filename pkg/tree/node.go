package tree

import (
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
)

// Option configures the shared attributes of a node or actor.
type Option func(*base)

// WithName sets the optional display name.
func WithName(name string) Option {
	return func(b *base) {
		b.name = name
	}
}

// WithLogger sets the logger used to trace ticks.
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithHooks registers observability hooks fired after every tick.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(b *base) {
		b.hooks = hooks
	}
}

// base holds identity and tracing shared by every node kind.
type base struct {
	id     string
	name   string
	kind   string
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

func newBase(kind, id string, opts []Option) (base, error) {
	if id == "" {
		return base{}, &domain.MissingFieldError{Object: kind, Field: domain.FieldID}
	}
	b := base{
		id:     id,
		kind:   kind,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b, nil
}

// ID returns the node identifier.
func (b *base) ID() string { return b.id }

// Name returns the display name, which may be empty.
func (b *base) Name() string { return b.name }

// Kind returns the registered type name of the node.
func (b *base) Kind() string { return b.kind }

func (b *base) report(status domain.Status) domain.Status {
	b.logger.Debug("node tick", "id", b.id, "kind", b.kind, "status", status)
	b.hooks.Tick(&domain.TickEvent{
		Timestamp: time.Now(),
		NodeID:    b.id,
		Kind:      b.kind,
		Status:    status,
	})
	return status
}

func (b *base) acknowledge(outcome string) {
	b.logger.Debug("node acknowledged", "id", b.id, "kind", b.kind, "outcome", outcome)
}
