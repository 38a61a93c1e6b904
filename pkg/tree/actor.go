package tree

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Actor is one agent driving a behavior tree.
type Actor struct {
	base
	root domain.Node
}

var _ domain.RootHolder = (*Actor)(nil)

// NewActor creates an actor without a root node. The name is required; when
// id is empty the name doubles as the identifier.
func NewActor(id, name string, opts ...Option) (*Actor, error) {
	if name == "" {
		object := id
		if object == "" {
			object = domain.KindActor
		}
		return nil, &domain.MissingFieldError{Object: object, Field: domain.FieldName}
	}
	if id == "" {
		id = name
	}
	b, err := newBase(domain.KindActor, id, append(append([]Option(nil), opts...), WithName(name)))
	if err != nil {
		return nil, err
	}
	b.logger.Info("constructed actor", "name", name)
	return &Actor{base: b}, nil
}

// RootNode returns the current root, or nil.
func (a *Actor) RootNode() domain.Node { return a.root }

// SetRootNode replaces the root node.
func (a *Actor) SetRootNode(root domain.Node) {
	a.root = root
}

// Execute ticks the root node once. The boolean is false, and nothing
// happens, when no root has been set.
func (a *Actor) Execute() (domain.Status, bool) {
	if a.root == nil {
		a.logger.Info("actor has no root node", "name", a.name)
		return "", false
	}
	a.logger.Debug("actor running root node", "name", a.name, "root", a.root.ID())
	status := a.root.Execute()
	a.logger.Info("actor tick", "name", a.name, "status", status)
	return status, true
}
