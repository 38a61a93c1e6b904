package tree_test

import (
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/mock"
)

// mockNode records every call made by a parent node.
type mockNode struct {
	mock.Mock
	id string
}

func newMockNode(id string, status domain.Status) *mockNode {
	m := &mockNode{id: id}
	m.On("Execute").Return(status)
	m.On("Succeeded").Return()
	m.On("Failed").Return()
	return m
}

func (m *mockNode) ID() string { return m.id }

func (m *mockNode) Execute() domain.Status {
	return m.Called().Get(0).(domain.Status)
}

func (m *mockNode) Succeeded() { m.Called() }

func (m *mockNode) Failed() { m.Called() }

// assertNodeCalls checks how often the parent called each method of the mock.
func assertNodeCalls(t *testing.T, m *mockNode, succeeded, failed, executed int) {
	t.Helper()
	m.AssertNumberOfCalls(t, "Succeeded", succeeded)
	m.AssertNumberOfCalls(t, "Failed", failed)
	m.AssertNumberOfCalls(t, "Execute", executed)
}

// scriptedNode returns a fixed sequence of statuses, then repeats the last one.
type scriptedNode struct {
	id        string
	script    []domain.Status
	executed  int
	succeeded int
	failed    int
}

func (s *scriptedNode) ID() string { return s.id }

func (s *scriptedNode) Execute() domain.Status {
	i := s.executed
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.executed++
	return s.script[i]
}

func (s *scriptedNode) Succeeded() { s.succeeded++ }

func (s *scriptedNode) Failed() { s.failed++ }
