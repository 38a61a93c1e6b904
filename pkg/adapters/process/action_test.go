package process

import (
	"testing"

	"github.com/aretw0/arbor/pkg/actions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_OrphanedRunIsDropped(t *testing.T) {
	board := actions.NewBlackboard(nil)
	runner := NewRunner(WithBlackboard(board))
	runner.Register("noop", "true")

	act, err := runner.NewAction(ExecParams{Command: "noop", SaveTo: "out"})
	require.NoError(t, err)

	current := make(chan struct{})
	act.done = current

	act.finish(make(chan struct{}), &Result{Output: "stale"})
	_, ok := board.Get("out")
	assert.False(t, ok, "a run replaced by a reset must not write")
	assert.Nil(t, act.last)

	act.finish(current, &Result{Output: "fresh"})
	v, ok := board.Get("out")
	require.True(t, ok)
	assert.Equal(t, "fresh", v)
}
