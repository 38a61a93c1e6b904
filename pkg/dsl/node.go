package dsl

import (
	"maps"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// NodeBuilder provides a fluent API for configuring one record.
type NodeBuilder struct {
	raw     map[string]any
	builder *Builder
}

func (n *NodeBuilder) kind(kind string) *NodeBuilder {
	n.raw[domain.FieldType] = kind
	return n
}

// Sequence marks the record as a sequence.
func (n *NodeBuilder) Sequence() *NodeBuilder { return n.kind(domain.KindSequence) }

// Selector marks the record as a selector.
func (n *NodeBuilder) Selector() *NodeBuilder { return n.kind(domain.KindSelector) }

// PassThrough marks the record as a pass-through decorator around target.
func (n *NodeBuilder) PassThrough(target string) *NodeBuilder {
	return n.kind(domain.KindPassThrough).Decorate(target)
}

// Invert marks the record as an inverting decorator around target.
func (n *NodeBuilder) Invert(target string) *NodeBuilder {
	return n.kind(domain.KindInvert).Decorate(target)
}

// Leaf marks the record as a leaf running the named action.
func (n *NodeBuilder) Leaf(action string) *NodeBuilder {
	n.raw[domain.FieldAction] = action
	return n.kind(domain.KindLeafAction)
}

// LeafWith marks the record as a leaf running the named action with params.
func (n *NodeBuilder) LeafWith(action string, params map[string]any) *NodeBuilder {
	act := make(map[string]any, len(params)+1)
	maps.Copy(act, params)
	act[domain.FieldType] = action
	n.raw[domain.FieldAction] = act
	return n.kind(domain.KindLeafAction)
}

// Condition marks the record as a leaf evaluating expr against the blackboard.
func (n *NodeBuilder) Condition(expr string) *NodeBuilder {
	return n.LeafWith(registry.ActionCondition, map[string]any{"expr": expr})
}

// Iterative marks the record as an iterative leaf finishing after execs ticks.
func (n *NodeBuilder) Iterative(execs int) *NodeBuilder {
	n.raw["execs"] = execs
	return n.kind(domain.KindLeafIterative)
}

// Actor marks the record as an actor with the given name.
func (n *NodeBuilder) Actor(name string) *NodeBuilder {
	n.raw[domain.FieldName] = name
	return n.kind(domain.KindActor)
}

// Type sets an arbitrary registered type name.
func (n *NodeBuilder) Type(kind string) *NodeBuilder { return n.kind(kind) }

// Name sets the display name.
func (n *NodeBuilder) Name(name string) *NodeBuilder {
	n.raw[domain.FieldName] = name
	return n
}

// Root points an actor at the record with the given id.
func (n *NodeBuilder) Root(id string) *NodeBuilder {
	n.raw[domain.FieldRootNode] = id
	return n
}

// Child appends child references in order.
func (n *NodeBuilder) Child(ids ...string) *NodeBuilder {
	children, _ := n.raw[domain.FieldChildNodes].([]any)
	for _, id := range ids {
		children = append(children, id)
	}
	n.raw[domain.FieldChildNodes] = children
	return n
}

// Decorate sets the decoratee reference.
func (n *NodeBuilder) Decorate(id string) *NodeBuilder {
	n.raw[domain.FieldDecoratee] = id
	return n
}

// Param sets a constructor parameter.
func (n *NodeBuilder) Param(key string, value any) *NodeBuilder {
	n.raw[key] = value
	return n
}

// Map returns a copy of the record literal.
func (n *NodeBuilder) Map() map[string]any {
	out := maps.Clone(n.raw)
	if children, ok := out[domain.FieldChildNodes].([]any); ok {
		out[domain.FieldChildNodes] = append([]any(nil), children...)
	}
	return out
}
