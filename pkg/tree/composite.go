package tree

import "github.com/aretw0/arbor/pkg/domain"

// composite owns an ordered child list and a cursor to the child currently
// being worked on. Children before the cursor have been consumed.
type composite struct {
	base
	children []domain.Node
	current  int
}

// AddChild appends child to the end of the list.
func (c *composite) AddChild(child domain.Node) {
	if child == nil {
		c.logger.Warn("ignoring nil child", "id", c.id)
		return
	}
	c.children = append(c.children, child)
}

// Children returns every child in declared order, consumed or not.
func (c *composite) Children() []domain.Node {
	out := make([]domain.Node, len(c.children))
	copy(out, c.children)
	return out
}

// Pending returns the children that have not been consumed yet.
func (c *composite) Pending() []domain.Node {
	if c.current >= len(c.children) {
		return nil
	}
	out := make([]domain.Node, len(c.children)-c.current)
	copy(out, c.children[c.current:])
	return out
}

// Reset moves the cursor back to the first child so the composite can run again.
func (c *composite) Reset() {
	c.current = 0
}

func (c *composite) done() bool {
	return c.current >= len(c.children)
}

// Succeeded is only traced; composites keep no per-outcome bookkeeping.
func (c *composite) Succeeded() { c.acknowledge("success") }

// Failed is only traced; composites keep no per-outcome bookkeeping.
func (c *composite) Failed() { c.acknowledge("failure") }
