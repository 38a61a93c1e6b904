package domain

// Object is anything the loader can instantiate and index by id.
type Object interface {
	ID() string
}

// Node is the capability surface every behavior tree node implements.
//
// Execute advances the node by exactly one tick. Calling it again while the
// previous result was StatusReady continues the work instead of restarting it.
// Succeeded and Failed are called by the parent once it has recognized the
// node's StatusSuccess or StatusFailure result.
type Node interface {
	ID() string
	Execute() Status
	Succeeded()
	Failed()
}

// Action is the external capability a leaf node adapts to.
// What an action actually does is business logic outside of the engine.
type Action interface {
	Execute() Status
	Succeeded()
	Failed()
}

// Composite is a node that owns an ordered list of children.
type Composite interface {
	Node
	AddChild(child Node)
}

// Decorator is a node that owns exactly one child.
type Decorator interface {
	Node
	SetDecoratee(child Node) error
}

// RootHolder owns the root node of a tree (typically an Actor).
type RootHolder interface {
	SetRootNode(root Node)
}

// Named is implemented by objects that carry an optional display name.
type Named interface {
	Name() string
}
