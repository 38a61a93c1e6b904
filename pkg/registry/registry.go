// Package registry maps record type names to node constructors and action
// names to action factories. It is the extension point for new node kinds:
// register them before loading and the loader picks them up by name.
package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/actions"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/record"
	"github.com/aretw0/arbor/pkg/tree"
)

// Constructor builds a bare instance from a record. Reference fields are not
// resolved yet; the loader links them after every record was instantiated.
type Constructor func(env Env, rec *record.Record) (domain.Object, error)

// Env carries what a constructor needs besides the record itself.
type Env struct {
	Registry *Registry
	Logger   *slog.Logger
	Hooks    domain.LifecycleHooks
}

// NodeOptions returns the tree options shared by every node built from rec.
func (e Env) NodeOptions(rec *record.Record) []tree.Option {
	opts := []tree.Option{tree.WithName(rec.Name), tree.WithHooks(e.Hooks)}
	if e.Logger != nil {
		opts = append(opts, tree.WithLogger(e.Logger))
	}
	return opts
}

// Action builds the action declared in the record's "action" field.
func (e Env) Action(rec *record.Record) (domain.Action, error) {
	raw, ok := rec.Params[domain.FieldAction]
	if !ok || raw == nil {
		return nil, &domain.MissingFieldError{Object: rec.ID, Field: domain.FieldAction}
	}
	act, err := e.Registry.BuildAction(raw)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", rec.ID, err)
	}
	return act, nil
}

// Registry manages the available node kinds and actions.
type Registry struct {
	mu      sync.RWMutex
	kinds   map[string]Constructor
	actions map[string]actions.Factory
	board   *actions.Blackboard
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithBlackboard binds the blackboard actions (Condition, Assign) to board.
func WithBlackboard(board *actions.Blackboard) Option {
	return func(r *Registry) {
		r.board = board
	}
}

// WithLogger sets the logger handed to blackboard actions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a new empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		kinds:   make(map[string]Constructor),
		actions: make(map[string]actions.Factory),
		board:   actions.NewBlackboard(nil),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a node kind. An existing kind with the same name is overwritten.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[name] = ctor
}

// RegisterAction adds an action factory. An existing factory with the same
// name is overwritten.
func (r *Registry) RegisterAction(name string, factory actions.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = factory
}

// Alias makes alias construct whatever name constructs.
func (r *Registry) Alias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctor, ok := r.kinds[name]
	if !ok {
		return fmt.Errorf("alias %q: %w: %q", alias, domain.ErrUnknownType, name)
	}
	r.kinds[alias] = ctor
	return nil
}

// Lookup returns the constructor registered under name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.kinds[name]
	return ctor, ok
}

// Construct looks up rec.Type and builds a bare instance.
func (r *Registry) Construct(env Env, rec *record.Record) (domain.Object, error) {
	ctor, ok := r.Lookup(rec.Type)
	if !ok {
		return nil, &domain.UnknownTypeError{ID: rec.ID, Type: rec.Type}
	}
	if env.Registry == nil {
		env.Registry = r
	}
	obj, err := ctor(env, rec)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("constructor %q returned nothing for record %q", rec.Type, rec.ID)
	}
	return obj, nil
}

// BuildAction builds an action from the value of an "action" field: either
// the name of a registered action, or a map whose "type" names it and whose
// other keys are its parameters.
func (r *Registry) BuildAction(raw any) (domain.Action, error) {
	var (
		name   string
		params map[string]any
	)
	switch v := raw.(type) {
	case string:
		name = v
	case map[string]any:
		name, _ = v[domain.FieldType].(string)
		params = make(map[string]any, len(v))
		for k, val := range v {
			if k != domain.FieldType {
				params[k] = val
			}
		}
	default:
		return nil, &domain.MalformedRecordError{
			Start:  -1,
			End:    -1,
			Reason: fmt.Sprintf("action: expected a name or a map, got %T", raw),
		}
	}
	if name == "" {
		return nil, &domain.MissingFieldError{Object: domain.FieldAction, Field: domain.FieldType}
	}

	r.mu.RLock()
	factory, ok := r.actions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &domain.UnknownTypeError{ID: domain.FieldAction, Type: name}
	}
	return factory(params)
}

// Kinds returns the registered node kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.kinds)
}

// Actions returns the registered action names, sorted.
func (r *Registry) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.actions)
}

// Blackboard returns the blackboard shared by blackboard actions.
func (r *Registry) Blackboard() *actions.Blackboard {
	return r.board
}

// Clone returns an independent copy. Registering on the copy does not affect r.
// The blackboard is shared.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry{
		kinds:   make(map[string]Constructor, len(r.kinds)),
		actions: make(map[string]actions.Factory, len(r.actions)),
		board:   r.board,
		logger:  r.logger,
	}
	for k, v := range r.kinds {
		c.kinds[k] = v
	}
	for k, v := range r.actions {
		c.actions[k] = v
	}
	return c
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
