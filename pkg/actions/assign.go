package actions

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Assign writes a value to the blackboard and succeeds.
type Assign struct {
	board *Blackboard
	key   string
	value any
}

// AssignParams are the record parameters of an assignment.
type AssignParams struct {
	Key   string `mapstructure:"key"`
	Value any    `mapstructure:"value"`
}

// NewAssign returns an action storing value under key.
func NewAssign(board *Blackboard, key string, value any) (*Assign, error) {
	if key == "" {
		return nil, &domain.MissingFieldError{Object: "Assign", Field: "key"}
	}
	return &Assign{board: board, key: key, value: value}, nil
}

// AssignFactory returns a Factory building assignments bound to board.
func AssignFactory(board *Blackboard) Factory {
	return func(params map[string]any) (domain.Action, error) {
		var p AssignParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		return NewAssign(board, p.Key, p.Value)
	}
}

func (a *Assign) Execute() domain.Status {
	a.board.Set(a.key, a.value)
	return domain.StatusSuccess
}

func (a *Assign) Succeeded() {}

func (a *Assign) Failed() {}
