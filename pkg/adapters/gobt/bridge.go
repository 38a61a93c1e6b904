// Package gobt bridges arbor trees and github.com/joeycumines/go-behaviortree.
//
// A bt.Node can run as the action of an arbor leaf, and an arbor node can be
// placed inside a go-behaviortree tree. bt.Running maps to ready.
package gobt

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/actions"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
	bt "github.com/joeycumines/go-behaviortree"
)

// FromStatus converts a go-behaviortree status.
func FromStatus(s bt.Status) domain.Status {
	switch s {
	case bt.Success:
		return domain.StatusSuccess
	case bt.Failure:
		return domain.StatusFailure
	default:
		return domain.StatusReady
	}
}

// ToStatus converts an arbor status. Anything that is not terminal runs.
func ToStatus(s domain.Status) bt.Status {
	switch s {
	case domain.StatusSuccess:
		return bt.Success
	case domain.StatusFailure:
		return bt.Failure
	default:
		return bt.Running
	}
}

// Action runs a bt.Node as an arbor action.
type Action struct {
	node   bt.Node
	logger *slog.Logger

	mu      sync.Mutex
	lastErr error
}

var _ domain.Action = (*Action)(nil)

// NewAction wraps node. A tick error is logged and reported as failure.
func NewAction(node bt.Node, logger *slog.Logger) *Action {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Action{node: node, logger: logger}
}

// Execute ticks the wrapped node once.
func (a *Action) Execute() domain.Status {
	status, err := a.node.Tick()

	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()

	if err != nil {
		a.logger.Warn("behaviortree tick failed", "error", err)
		return domain.StatusFailure
	}
	return FromStatus(status)
}

// Succeeded is a no-op: go-behaviortree nodes are not acknowledged.
func (a *Action) Succeeded() {}

// Failed is a no-op.
func (a *Action) Failed() {}

// Err returns the error of the last tick, if any.
func (a *Action) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Node exposes an arbor node as a bt.Node. Since go-behaviortree parents do
// not acknowledge their children, the bridge acknowledges terminal results
// itself before returning them.
func Node(n domain.Node) bt.Node {
	return bt.New(func(children []bt.Node) (bt.Status, error) {
		if n == nil {
			return bt.Failure, fmt.Errorf("gobt: nil node")
		}
		status := n.Execute()
		switch status {
		case domain.StatusSuccess:
			n.Succeeded()
		case domain.StatusFailure:
			n.Failed()
		}
		return ToStatus(status), nil
	})
}

// Catalog names go-behaviortree node factories so records can use them as
// actions. A factory is called once per leaf, so leaves never share a node.
type Catalog map[string]func() bt.Node

// Register adds every catalog entry to reg as an action.
func (c Catalog) Register(reg *registry.Registry, logger *slog.Logger) {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		build := c[name]
		reg.RegisterAction(name, actions.Factory(func(map[string]any) (domain.Action, error) {
			return NewAction(build(), logger), nil
		}))
	}
}
