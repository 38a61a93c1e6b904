package actions

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition succeeds when a boolean expression over the blackboard holds and
// fails otherwise. It finishes on every tick.
//
// Expressions use the expr-lang syntax, with blackboard keys as variables:
//
//	hp < 10 && enemy_visible
type Condition struct {
	source  string
	program *vm.Program
	board   *Blackboard
	logger  *slog.Logger
}

// ConditionParams are the record parameters of a condition.
type ConditionParams struct {
	Expr string `mapstructure:"expr"`
}

// NewCondition compiles source against board.
func NewCondition(board *Blackboard, source string) (*Condition, error) {
	if source == "" {
		return nil, &domain.MissingFieldError{Object: "Condition", Field: "expr"}
	}
	program, err := expr.Compile(source,
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("condition %q: %w", source, err)
	}
	return &Condition{
		source:  source,
		program: program,
		board:   board,
		logger:  logging.NewNop(),
	}, nil
}

// ConditionFactory returns a Factory building conditions bound to board.
func ConditionFactory(board *Blackboard, logger *slog.Logger) Factory {
	return func(params map[string]any) (domain.Action, error) {
		var p ConditionParams
		if err := decodeParams(params, &p); err != nil {
			return nil, err
		}
		c, err := NewCondition(board, p.Expr)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			c.logger = logger
		}
		return c, nil
	}
}

// Source returns the expression text.
func (c *Condition) Source() string { return c.source }

func (c *Condition) Execute() domain.Status {
	result, err := expr.Run(c.program, c.board.Snapshot())
	if err != nil {
		c.logger.Error("condition evaluation failed", "expr", c.source, "error", err)
		return domain.StatusFailure
	}
	if ok, _ := result.(bool); ok {
		return domain.StatusSuccess
	}
	return domain.StatusFailure
}

func (c *Condition) Succeeded() {}

func (c *Condition) Failed() {}
