package actions

import (
	"sync/atomic"

	"github.com/aretw0/arbor/pkg/domain"
)

// Constant always returns the same status. It counts the acknowledgements it
// receives, which makes it a convenient stub in tests.
type Constant struct {
	status    domain.Status
	executed  atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
}

// NewConstant returns an action that always reports status.
func NewConstant(status domain.Status) *Constant {
	return &Constant{status: status}
}

// Succeed returns an action that always succeeds.
func Succeed() *Constant { return NewConstant(domain.StatusSuccess) }

// Fail returns an action that always fails.
func Fail() *Constant { return NewConstant(domain.StatusFailure) }

// Wait returns an action that never finishes.
func Wait() *Constant { return NewConstant(domain.StatusReady) }

func (c *Constant) Execute() domain.Status {
	c.executed.Add(1)
	return c.status
}

func (c *Constant) Succeeded() { c.succeeded.Add(1) }

func (c *Constant) Failed() { c.failed.Add(1) }

// Calls returns how often Execute, Succeeded and Failed were called.
func (c *Constant) Calls() (executed, succeeded, failed int) {
	return int(c.executed.Load()), int(c.succeeded.Load()), int(c.failed.Load())
}

// ConstantFactory returns a Factory for a fixed status. Parameters are ignored.
func ConstantFactory(status domain.Status) Factory {
	return func(map[string]any) (domain.Action, error) {
		return NewConstant(status), nil
	}
}
