package tree

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
)

// Placeholder stands in for a reference that has not been linked yet.
// Decorators built by the loader hold one between the instantiation and the
// linking pass so that their slot is never nil. A placeholder that survives
// linking fails every tick.
type Placeholder struct {
	ref string
}

var _ domain.Node = (*Placeholder)(nil)

// NewPlaceholder returns a placeholder for the given reference description.
func NewPlaceholder(ref string) *Placeholder {
	return &Placeholder{ref: ref}
}

// ID returns a synthetic identifier naming the pending reference.
func (p *Placeholder) ID() string { return fmt.Sprintf("<unlinked:%s>", p.ref) }

// Execute always fails.
func (p *Placeholder) Execute() domain.Status { return domain.StatusFailure }

// Succeeded is a no-op.
func (p *Placeholder) Succeeded() {}

// Failed is a no-op.
func (p *Placeholder) Failed() {}

// IsPlaceholder reports whether n is an unlinked placeholder.
func IsPlaceholder(n domain.Node) bool {
	_, ok := n.(*Placeholder)
	return ok
}
