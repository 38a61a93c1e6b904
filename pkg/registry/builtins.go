package registry

import (
	"sync"

	"github.com/aretw0/arbor/pkg/actions"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/record"
	"github.com/aretw0/arbor/pkg/tree"
)

// Legacy type names accepted as aliases of the built-in kinds.
var legacyAliases = map[string]string{
	"NodeSequence":        domain.KindSequence,
	"NodeSelector":        domain.KindSelector,
	"NodeDecorator":       domain.KindPassThrough,
	"NodeDecoratorInvert": domain.KindInvert,
	"NodeLeafAction":      domain.KindLeafAction,
}

// Built-in action names.
const (
	ActionSucceed   = "Succeed"
	ActionFail      = "Fail"
	ActionWait      = "Wait"
	ActionCountdown = "Countdown"
	ActionCondition = "Condition"
	ActionAssign    = "Assign"
)

// NewDefault creates a registry seeded with the built-in node kinds, their
// legacy aliases and the built-in actions.
func NewDefault(opts ...Option) *Registry {
	r := New(opts...)

	r.Register(domain.KindSequence, func(env Env, rec *record.Record) (domain.Object, error) {
		return tree.NewSequence(rec.ID, env.NodeOptions(rec)...)
	})
	r.Register(domain.KindSelector, func(env Env, rec *record.Record) (domain.Object, error) {
		return tree.NewSelector(rec.ID, env.NodeOptions(rec)...)
	})
	r.Register(domain.KindPassThrough, func(env Env, rec *record.Record) (domain.Object, error) {
		slot, err := pendingDecoratee(rec)
		if err != nil {
			return nil, err
		}
		return tree.NewPassThrough(rec.ID, slot, env.NodeOptions(rec)...)
	})
	r.Register(domain.KindInvert, func(env Env, rec *record.Record) (domain.Object, error) {
		slot, err := pendingDecoratee(rec)
		if err != nil {
			return nil, err
		}
		return tree.NewInvert(rec.ID, slot, env.NodeOptions(rec)...)
	})
	r.Register(domain.KindLeafAction, func(env Env, rec *record.Record) (domain.Object, error) {
		act, err := env.Action(rec)
		if err != nil {
			return nil, err
		}
		return tree.NewLeafAction(rec.ID, act, env.NodeOptions(rec)...)
	})
	r.Register(domain.KindLeafIterative, func(env Env, rec *record.Record) (domain.Object, error) {
		act, err := actions.NewCountdownFromParams(rec.Params)
		if err != nil {
			return nil, err
		}
		return tree.NewLeafKind(domain.KindLeafIterative, rec.ID, act, env.NodeOptions(rec)...)
	})
	r.Register(domain.KindActor, func(env Env, rec *record.Record) (domain.Object, error) {
		opts := []tree.Option{}
		if env.Logger != nil {
			opts = append(opts, tree.WithLogger(env.Logger))
		}
		return tree.NewActor(rec.ID, rec.Name, opts...)
	})

	for alias, name := range legacyAliases {
		_ = r.Alias(alias, name)
	}

	r.RegisterAction(ActionSucceed, actions.ConstantFactory(domain.StatusSuccess))
	r.RegisterAction(ActionFail, actions.ConstantFactory(domain.StatusFailure))
	r.RegisterAction(ActionWait, actions.ConstantFactory(domain.StatusReady))
	r.RegisterAction(ActionCountdown, actions.NewCountdownFromParams)
	r.RegisterAction(ActionCondition, actions.ConditionFactory(r.board, r.logger))
	r.RegisterAction(ActionAssign, actions.AssignFactory(r.board))

	return r
}

// pendingDecoratee checks that a decorator record names its decoratee and
// returns a placeholder to hold the slot until linking.
func pendingDecoratee(rec *record.Record) (domain.Node, error) {
	refs := rec.RefsFor(domain.FieldDecoratee)
	if len(refs) == 0 {
		return nil, &domain.MissingFieldError{Object: rec.ID, Field: domain.FieldDecoratee}
	}
	return tree.NewPlaceholder(refs[0].Describe()), nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry used by top-level entry points.
// Libraries and tests should prefer NewDefault or Clone so that they do not
// mutate shared state.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewDefault()
	})
	return defaultReg
}
