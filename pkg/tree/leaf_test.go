package tree_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAction struct {
	mock.Mock
}

func (m *mockAction) Execute() domain.Status { return m.Called().Get(0).(domain.Status) }
func (m *mockAction) Succeeded()             { m.Called() }
func (m *mockAction) Failed()                { m.Called() }

func newMockAction(status domain.Status) *mockAction {
	m := &mockAction{}
	m.On("Execute").Return(status)
	m.On("Succeeded").Return()
	m.On("Failed").Return()
	return m
}

func TestNewLeafAction(t *testing.T) {
	act := newMockAction(domain.StatusReady)
	leaf, err := tree.NewLeafAction("node00", act)
	require.NoError(t, err)
	assert.Same(t, act, leaf.Action())
	assert.Equal(t, domain.KindLeafAction, leaf.Kind())
}

func TestNewLeafAction_NoAction(t *testing.T) {
	_, err := tree.NewLeafAction("asdf", nil)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.FieldAction, missing.Field)
}

func TestLeafAction_Execute(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusSuccess, domain.StatusFailure, domain.StatusReady} {
		t.Run(status.String(), func(t *testing.T) {
			act := newMockAction(status)
			leaf, err := tree.NewLeafAction("actionleaf", act)
			require.NoError(t, err)

			assert.Equal(t, status, leaf.Execute())
			act.AssertNumberOfCalls(t, "Execute", 1)
		})
	}
}

func TestLeafAction_Acknowledgements(t *testing.T) {
	act := newMockAction(domain.StatusReady)
	leaf, err := tree.NewLeafAction("actionleaf", act)
	require.NoError(t, err)

	leaf.Succeeded()
	act.AssertNumberOfCalls(t, "Succeeded", 1)
	leaf.Failed()
	act.AssertNumberOfCalls(t, "Failed", 1)
}

func TestNewLeafKind(t *testing.T) {
	leaf, err := tree.NewLeafKind(domain.KindLeafIterative, "iter", newMockAction(domain.StatusReady))
	require.NoError(t, err)
	assert.Equal(t, domain.KindLeafIterative, leaf.Kind())
}
