package tree_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSelector(t *testing.T) *tree.Selector {
	t.Helper()
	sel, err := tree.NewSelector("selector00")
	require.NoError(t, err)
	return sel
}

func TestSelector_Empty(t *testing.T) {
	sel := newSelector(t)
	assert.Equal(t, domain.StatusFailure, sel.Execute())
}

func TestSelector_Repeat(t *testing.T) {
	sel := newSelector(t)
	node1 := newMockNode("n1", domain.StatusReady)
	node2 := newMockNode("n2", domain.StatusSuccess)
	sel.AddChild(node1)
	sel.AddChild(node2)

	assert.Equal(t, domain.StatusReady, sel.Execute())
	assertNodeCalls(t, node1, 0, 0, 1)
	assertNodeCalls(t, node2, 0, 0, 0)

	assert.Equal(t, domain.StatusReady, sel.Execute())
	assertNodeCalls(t, node1, 0, 0, 2)
	assertNodeCalls(t, node2, 0, 0, 0)
}

func TestSelector_ChildFailure(t *testing.T) {
	sel := newSelector(t)
	node1 := newMockNode("n1", domain.StatusFailure)
	node2 := newMockNode("n2", domain.StatusReady)
	sel.AddChild(node1)
	sel.AddChild(node2)

	assert.Equal(t, domain.StatusReady, sel.Execute())
	assertNodeCalls(t, node1, 0, 1, 1)
	assertNodeCalls(t, node2, 0, 0, 0)

	assert.Equal(t, domain.StatusReady, sel.Execute())
	assertNodeCalls(t, node1, 0, 1, 1)
	assertNodeCalls(t, node2, 0, 0, 1)
}

func TestSelector_AllFail(t *testing.T) {
	sel := newSelector(t)
	node1 := newMockNode("n1", domain.StatusFailure)
	node2 := newMockNode("n2", domain.StatusFailure)
	sel.AddChild(node1)
	sel.AddChild(node2)

	assert.Equal(t, domain.StatusReady, sel.Execute())
	assert.Equal(t, domain.StatusFailure, sel.Execute())
	assert.Empty(t, sel.Pending())

	// Failed children are never ticked again.
	assert.Equal(t, domain.StatusFailure, sel.Execute())
	assertNodeCalls(t, node1, 0, 1, 1)
	assertNodeCalls(t, node2, 0, 1, 1)
}

func TestSelector_ChildSuccess(t *testing.T) {
	sel := newSelector(t)
	node1 := newMockNode("n1", domain.StatusSuccess)
	node2 := newMockNode("n2", domain.StatusReady)
	sel.AddChild(node1)
	sel.AddChild(node2)

	assert.Equal(t, domain.StatusSuccess, sel.Execute())
	assertNodeCalls(t, node1, 1, 0, 1)
	assertNodeCalls(t, node2, 0, 0, 0)

	// The winner stays in place: it is ticked and acknowledged again.
	assert.Equal(t, domain.StatusSuccess, sel.Execute())
	assertNodeCalls(t, node1, 2, 0, 2)
	assertNodeCalls(t, node2, 0, 0, 0)
}

func TestSelector_Reset(t *testing.T) {
	sel := newSelector(t)
	node := newMockNode("n1", domain.StatusFailure)
	sel.AddChild(node)

	assert.Equal(t, domain.StatusFailure, sel.Execute())
	sel.Reset()
	assert.Equal(t, domain.StatusFailure, sel.Execute())
	assertNodeCalls(t, node, 0, 2, 2)
}
