package tree

import "github.com/aretw0/arbor/pkg/domain"

// WalkFunc is called for every node reached by Walk. Returning false skips
// the node's children.
type WalkFunc func(n domain.Node, depth int) bool

type childLister interface {
	Children() []domain.Node
}

type decorated interface {
	Decoratee() domain.Node
}

// Walk visits root and its descendants depth-first, in child order.
// Consumed children of composites are visited too.
func Walk(root domain.Node, fn WalkFunc) {
	walk(root, 0, fn)
}

func walk(n domain.Node, depth int, fn WalkFunc) {
	if n == nil || !fn(n, depth) {
		return
	}
	switch v := n.(type) {
	case childLister:
		for _, child := range v.Children() {
			walk(child, depth+1, fn)
		}
	case decorated:
		walk(v.Decoratee(), depth+1, fn)
	}
}

// KindOf returns the registered type name of n, or "Node" for foreign implementations.
func KindOf(n domain.Node) string {
	if k, ok := n.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return "Node"
}

// NameOf returns the display name of n, if it has one.
func NameOf(n domain.Node) string {
	if named, ok := n.(domain.Named); ok {
		return named.Name()
	}
	return ""
}
