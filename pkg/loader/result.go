package loader

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Result holds the instances produced by one load.
type Result struct {
	// Objects are the instances built for top-level records, in input order.
	Objects []domain.Object

	index map[string]domain.Object
	owner map[string]string
}

// Lookup returns the instance built for id, top-level or nested.
func (r *Result) Lookup(id string) (domain.Object, bool) {
	obj, ok := r.index[id]
	return obj, ok
}

// Len returns the number of instances built, nested ones included.
func (r *Result) Len() int { return len(r.index) }

// Actors returns the top-level actors in input order.
func (r *Result) Actors() []*tree.Actor {
	var out []*tree.Actor
	for _, obj := range r.Objects {
		if a, ok := obj.(*tree.Actor); ok {
			out = append(out, a)
		}
	}
	return out
}

// Actor returns the top-level actor with the given name.
func (r *Result) Actor(name string) (*tree.Actor, bool) {
	for _, a := range r.Actors() {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Roots returns the top-level nodes that no other record links to, in input
// order. Actors are not nodes and are never included.
func (r *Result) Roots() []domain.Node {
	var out []domain.Node
	for _, obj := range r.Objects {
		n, ok := obj.(domain.Node)
		if ok && r.owner[n.ID()] == "" {
			out = append(out, n)
		}
	}
	return out
}

// Owner returns the id of the object id was linked into, if any.
func (r *Result) Owner(id string) (string, bool) {
	owner, ok := r.owner[id]
	return owner, ok
}

// descendsFrom reports whether ancestor is id or one of its owners. Owner
// chains are acyclic while linking, so the walk ends.
func (r *Result) descendsFrom(id, ancestor string) bool {
	for cur, ok := id, true; ok; cur, ok = r.owner[cur] {
		if cur == ancestor {
			return true
		}
	}
	return false
}
