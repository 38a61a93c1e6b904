package tree

import "github.com/aretw0/arbor/pkg/domain"

// Sequence runs its children in order. Each child must succeed before the next
// one starts; the first failure fails the sequence.
type Sequence struct {
	composite
}

var _ domain.Composite = (*Sequence)(nil)

// NewSequence creates an empty sequence.
func NewSequence(id string, opts ...Option) (*Sequence, error) {
	b, err := newBase(domain.KindSequence, id, opts)
	if err != nil {
		return nil, err
	}
	return &Sequence{composite: composite{base: b}}, nil
}

// Execute ticks the current child once.
//
// An empty (or fully consumed) sequence succeeds. A failed child is told so
// and is kept at the cursor: the sequence stays failed until its owner resets
// or replaces it.
func (s *Sequence) Execute() domain.Status {
	if s.done() {
		return s.report(domain.StatusSuccess)
	}

	child := s.children[s.current]
	switch status := child.Execute(); status {
	case domain.StatusFailure:
		child.Failed()
		return s.report(domain.StatusFailure)
	case domain.StatusSuccess:
		child.Succeeded()
		s.current++
		if s.done() {
			return s.report(domain.StatusSuccess)
		}
		return s.report(domain.StatusReady)
	default:
		if !status.Valid() {
			s.logger.Warn("child returned unknown status", "id", s.id, "child", child.ID(), "status", status)
		}
		return s.report(domain.StatusReady)
	}
}
