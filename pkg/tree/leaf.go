package tree

import "github.com/aretw0/arbor/pkg/domain"

// LeafAction adapts an external action to the node contract.
type LeafAction struct {
	base
	action domain.Action
}

var _ domain.Node = (*LeafAction)(nil)

// NewLeafAction creates a leaf around action, which must not be nil.
func NewLeafAction(id string, action domain.Action, opts ...Option) (*LeafAction, error) {
	return newLeaf(domain.KindLeafAction, id, action, opts)
}

// NewLeafKind is NewLeafAction for leaf kinds registered under their own type
// name (e.g. NodeLeafIterative).
func NewLeafKind(kind, id string, action domain.Action, opts ...Option) (*LeafAction, error) {
	return newLeaf(kind, id, action, opts)
}

func newLeaf(kind, id string, action domain.Action, opts []Option) (*LeafAction, error) {
	b, err := newBase(kind, id, opts)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, &domain.MissingFieldError{Object: id, Field: domain.FieldAction}
	}
	return &LeafAction{base: b, action: action}, nil
}

// Action returns the adapted action.
func (l *LeafAction) Action() domain.Action { return l.action }

// Execute forwards to the action.
func (l *LeafAction) Execute() domain.Status {
	return l.report(l.action.Execute())
}

// Succeeded forwards to the action.
func (l *LeafAction) Succeeded() {
	l.acknowledge("success")
	l.action.Succeeded()
}

// Failed forwards to the action.
func (l *LeafAction) Failed() {
	l.acknowledge("failure")
	l.action.Failed()
}
