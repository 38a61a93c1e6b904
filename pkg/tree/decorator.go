package tree

import "github.com/aretw0/arbor/pkg/domain"

// PassThrough forwards every call to its decoratee unchanged.
type PassThrough struct {
	base
	decoratee domain.Node
}

var _ domain.Decorator = (*PassThrough)(nil)

// NewPassThrough creates a decorator around decoratee, which must not be nil.
func NewPassThrough(id string, decoratee domain.Node, opts ...Option) (*PassThrough, error) {
	return newDecorator(domain.KindPassThrough, id, decoratee, opts)
}

func newDecorator(kind, id string, decoratee domain.Node, opts []Option) (*PassThrough, error) {
	b, err := newBase(kind, id, opts)
	if err != nil {
		return nil, err
	}
	if decoratee == nil {
		return nil, &domain.MissingFieldError{Object: id, Field: domain.FieldDecoratee}
	}
	return &PassThrough{base: b, decoratee: decoratee}, nil
}

// Decoratee returns the wrapped node.
func (p *PassThrough) Decoratee() domain.Node { return p.decoratee }

// SetDecoratee replaces the wrapped node.
func (p *PassThrough) SetDecoratee(decoratee domain.Node) error {
	if decoratee == nil {
		return &domain.MissingFieldError{Object: p.id, Field: domain.FieldDecoratee}
	}
	p.logger.Info("decorator changing decoratee", "id", p.id, "decoratee", decoratee.ID())
	p.decoratee = decoratee
	return nil
}

// Execute ticks the decoratee and returns its status.
func (p *PassThrough) Execute() domain.Status {
	return p.report(p.decoratee.Execute())
}

// Succeeded forwards the acknowledgement to the decoratee.
func (p *PassThrough) Succeeded() {
	p.acknowledge("success")
	p.decoratee.Succeeded()
}

// Failed forwards the acknowledgement to the decoratee.
func (p *PassThrough) Failed() {
	p.acknowledge("failure")
	p.decoratee.Failed()
}

// Invert swaps the success and failure results of its decoratee.
// Succeeded and Failed are forwarded to the decoratee unchanged, not swapped.
type Invert struct {
	PassThrough
}

var _ domain.Decorator = (*Invert)(nil)

// NewInvert creates an inverting decorator around decoratee.
func NewInvert(id string, decoratee domain.Node, opts ...Option) (*Invert, error) {
	p, err := newDecorator(domain.KindInvert, id, decoratee, opts)
	if err != nil {
		return nil, err
	}
	return &Invert{PassThrough: *p}, nil
}

// Execute ticks the decoratee and swaps success and failure. Ready passes through.
func (i *Invert) Execute() domain.Status {
	return i.report(i.decoratee.Execute().Invert())
}
