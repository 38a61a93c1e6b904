package actions_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/actions"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstant(t *testing.T) {
	act := actions.Succeed()
	assert.Equal(t, domain.StatusSuccess, act.Execute())
	act.Succeeded()
	act.Failed()

	executed, succeeded, failed := act.Calls()
	assert.Equal(t, 1, executed)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	assert.Equal(t, domain.StatusFailure, actions.Fail().Execute())
	assert.Equal(t, domain.StatusReady, actions.Wait().Execute())
}

func TestConstantFactory(t *testing.T) {
	act, err := actions.ConstantFactory(domain.StatusFailure)(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailure, act.Execute())
}

func TestCountdown(t *testing.T) {
	c, err := actions.NewCountdown(3)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusReady, c.Execute())
	assert.Equal(t, domain.StatusReady, c.Execute())
	assert.Equal(t, 1, c.Remaining())
	assert.Equal(t, domain.StatusSuccess, c.Execute())

	c.Succeeded()
	assert.Equal(t, 3, c.Remaining())
}

func TestCountdown_Invalid(t *testing.T) {
	_, err := actions.NewCountdown(0)
	assert.Error(t, err)
}

func TestNewCountdownFromParams(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		ticks  int
	}{
		{"default", nil, 1},
		{"int", map[string]any{"execs": 5}, 5},
		{"string", map[string]any{"execs": "2"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := actions.NewCountdownFromParams(tt.params)
			require.NoError(t, err)
			for i := 1; i < tt.ticks; i++ {
				require.Equal(t, domain.StatusReady, act.Execute(), "tick %d", i)
			}
			assert.Equal(t, domain.StatusSuccess, act.Execute())
		})
	}

	_, err := actions.NewCountdownFromParams(map[string]any{"execs": "many"})
	assert.Error(t, err)
}

func TestBlackboard(t *testing.T) {
	var bb actions.Blackboard
	assert.Nil(t, bb.Get("hp"))
	assert.Empty(t, bb.Snapshot())

	bb.Set("hp", 10)
	bb.Set("ammo", 3)
	assert.Equal(t, 10, bb.Get("hp"))
	assert.Equal(t, []string{"ammo", "hp"}, bb.Keys())

	snap := bb.Snapshot()
	snap["hp"] = 0
	assert.Equal(t, 10, bb.Get("hp"))

	bb.Delete("ammo")
	assert.Equal(t, []string{"hp"}, bb.Keys())
}

func TestCondition(t *testing.T) {
	bb := actions.NewBlackboard(map[string]any{"hp": 5, "enemy_visible": true})

	low, err := actions.NewCondition(bb, "hp < 10 && enemy_visible")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, low.Execute())

	bb.Set("hp", 50)
	assert.Equal(t, domain.StatusFailure, low.Execute())
}

func TestCondition_UndefinedVariableFails(t *testing.T) {
	bb := actions.NewBlackboard(nil)
	cond, err := actions.NewCondition(bb, "alarm == true")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailure, cond.Execute())
}

func TestCondition_Invalid(t *testing.T) {
	bb := actions.NewBlackboard(nil)

	_, err := actions.NewCondition(bb, "")
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = actions.NewCondition(bb, "hp <")
	assert.Error(t, err)
}

func TestConditionFactory(t *testing.T) {
	bb := actions.NewBlackboard(map[string]any{"door": "open"})
	act, err := actions.ConditionFactory(bb, nil)(map[string]any{"expr": `door == "open"`})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, act.Execute())
}

func TestAssign(t *testing.T) {
	bb := actions.NewBlackboard(nil)
	act, err := actions.AssignFactory(bb)(map[string]any{"key": "door", "value": "closed"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSuccess, act.Execute())
	assert.Equal(t, "closed", bb.Get("door"))

	_, err = actions.AssignFactory(bb)(map[string]any{"value": 1})
	assert.ErrorIs(t, err, domain.ErrMissingField)
}
