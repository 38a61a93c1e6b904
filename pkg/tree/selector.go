package tree

import "github.com/aretw0/arbor/pkg/domain"

// Selector runs its children in order until one succeeds. Failed children are
// discarded and the next one is tried on the following tick.
type Selector struct {
	composite
}

var _ domain.Composite = (*Selector)(nil)

// NewSelector creates an empty selector.
func NewSelector(id string, opts ...Option) (*Selector, error) {
	b, err := newBase(domain.KindSelector, id, opts)
	if err != nil {
		return nil, err
	}
	return &Selector{composite: composite{base: b}}, nil
}

// Execute ticks the current child once.
//
// An empty (or exhausted) selector fails. A succeeding child is kept at the
// cursor, so later ticks re-tick and re-acknowledge the same winner.
func (s *Selector) Execute() domain.Status {
	if s.done() {
		return s.report(domain.StatusFailure)
	}

	child := s.children[s.current]
	switch status := child.Execute(); status {
	case domain.StatusFailure:
		child.Failed()
		s.current++
		if s.done() {
			return s.report(domain.StatusFailure)
		}
		return s.report(domain.StatusReady)
	case domain.StatusSuccess:
		child.Succeeded()
		return s.report(domain.StatusSuccess)
	default:
		if !status.Valid() {
			s.logger.Warn("child returned unknown status", "id", s.id, "child", child.ID(), "status", status)
		}
		return s.report(domain.StatusReady)
	}
}
