package loader

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/record"
	"github.com/aretw0/arbor/pkg/registry"
)

// Loader builds linked graphs from records using a registry.
// A Loader holds no per-load state and may be shared between goroutines as
// long as its registry is not modified concurrently.
type Loader struct {
	registry *registry.Registry
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used by the loader and by every node it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHooks sets lifecycle hooks. OnLoad fires once per load; OnTick is
// handed to every node built.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Loader) {
		l.hooks = hooks
	}
}

// New creates a Loader. A nil registry selects registry.Default().
func New(reg *registry.Registry, opts ...Option) *Loader {
	if reg == nil {
		reg = registry.Default()
	}
	l := &Loader{
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Registry returns the registry the loader constructs from.
func (l *Loader) Registry() *registry.Registry {
	return l.registry
}

// Load splits, parses, instantiates and links every record in text.
func (l *Loader) Load(text string) (*Result, error) {
	start := time.Now()
	records, err := Parse(text)
	if err != nil {
		l.finish(start, 0, nil, err)
		return nil, err
	}
	l.logger.Debug("records parsed", "count", len(records))
	res, err := l.build(records)
	l.finish(start, len(records), res, err)
	return res, err
}

// LoadRecords instantiates and links already parsed records.
func (l *Loader) LoadRecords(records ...*record.Record) (*Result, error) {
	start := time.Now()
	res, err := l.build(records)
	l.finish(start, len(records), res, err)
	return res, err
}

func (l *Loader) finish(start time.Time, records int, res *Result, err error) {
	ev := &domain.LoadEvent{
		Timestamp: time.Now(),
		Records:   records,
		Duration:  time.Since(start),
		Err:       err,
	}
	if res != nil {
		ev.Objects = res.Len()
	}
	if err != nil {
		l.logger.Warn("load failed", "records", records, "error", err)
	} else {
		l.logger.Info("load complete", "records", records, "objects", ev.Objects, "duration", ev.Duration)
	}
	l.hooks.Load(ev)
}

func (l *Loader) build(records []*record.Record) (*Result, error) {
	res := &Result{
		index: make(map[string]domain.Object),
		owner: make(map[string]string),
	}

	all, err := l.instantiate(records, res)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("instantiation pass done", "objects", len(all))

	if err := l.link(all, res); err != nil {
		return nil, err
	}
	l.logger.Debug("link pass done")

	for _, rec := range records {
		res.Objects = append(res.Objects, res.index[rec.ID])
	}
	return res, nil
}

// instantiate builds a bare instance for every record, nested ones included,
// and returns the flattened record list in pre-order.
func (l *Loader) instantiate(records []*record.Record, res *Result) ([]*record.Record, error) {
	env := registry.Env{Registry: l.registry, Logger: l.logger, Hooks: l.hooks}

	var all []*record.Record
	for _, top := range records {
		if top == nil {
			continue
		}
		top.Walk(func(rec *record.Record) {
			all = append(all, rec)
		})
	}

	for _, rec := range all {
		if _, dup := res.index[rec.ID]; dup {
			return nil, &domain.DuplicateIdentifierError{ID: rec.ID}
		}
		obj, err := l.registry.Construct(env, rec)
		if err != nil {
			return nil, fmt.Errorf("instantiate %q: %w", rec.ID, err)
		}
		res.index[rec.ID] = obj
	}
	return all, nil
}

func (l *Loader) link(all []*record.Record, res *Result) error {
	for _, rec := range all {
		obj := res.index[rec.ID]
		for _, ref := range rec.Refs {
			target, err := resolve(rec, ref, res)
			if err != nil {
				return err
			}
			if owner, taken := res.owner[target.ID()]; taken {
				return &domain.MalformedRecordError{
					Start:  rec.Span.Start,
					End:    rec.Span.End,
					Reason: fmt.Sprintf("record %q: field %q: %q is already linked into %q", rec.ID, ref.Field, target.ID(), owner),
				}
			}
			if target.ID() == rec.ID {
				return &domain.MalformedRecordError{
					Start:  rec.Span.Start,
					End:    rec.Span.End,
					Reason: fmt.Sprintf("record %q: field %q: references itself", rec.ID, ref.Field),
				}
			}
			if res.descendsFrom(rec.ID, target.ID()) {
				return &domain.MalformedRecordError{
					Start:  rec.Span.Start,
					End:    rec.Span.End,
					Reason: fmt.Sprintf("record %q: field %q: linking %q would create a cycle", rec.ID, ref.Field, target.ID()),
				}
			}
			if err := attach(obj, rec, ref.Field, target); err != nil {
				return err
			}
			res.owner[target.ID()] = rec.ID
		}
	}
	return nil
}

func resolve(rec *record.Record, ref record.Ref, res *Result) (domain.Node, error) {
	id := ref.Describe()
	obj, ok := res.index[id]
	if !ok {
		return nil, &domain.DanglingReferenceError{From: rec.ID, Field: ref.Field, Ref: id}
	}
	n, ok := obj.(domain.Node)
	if !ok {
		return nil, &domain.MalformedRecordError{
			Start:  rec.Span.Start,
			End:    rec.Span.End,
			Reason: fmt.Sprintf("record %q: field %q: %q is not a node", rec.ID, ref.Field, id),
		}
	}
	return n, nil
}

func attach(obj domain.Object, rec *record.Record, field string, target domain.Node) error {
	notApplicable := func() error {
		return &domain.MalformedRecordError{
			Start:  rec.Span.Start,
			End:    rec.Span.End,
			Reason: fmt.Sprintf("record %q: field %q does not apply to type %q", rec.ID, field, rec.Type),
		}
	}

	switch field {
	case domain.FieldRootNode:
		holder, ok := obj.(domain.RootHolder)
		if !ok {
			return notApplicable()
		}
		holder.SetRootNode(target)
	case domain.FieldChildNodes:
		parent, ok := obj.(domain.Composite)
		if !ok {
			return notApplicable()
		}
		parent.AddChild(target)
	case domain.FieldDecoratee:
		dec, ok := obj.(domain.Decorator)
		if !ok {
			return notApplicable()
		}
		if err := dec.SetDecoratee(target); err != nil {
			return fmt.Errorf("link %q: %w", rec.ID, err)
		}
	default:
		return notApplicable()
	}
	return nil
}
