package polynorm

import (
	"context"
	"fmt"
)

// DefaultMaxTerms is the term budget applied to tool calls unless configured.
const DefaultMaxTerms = 10000

// ctxCheckInterval is how many monomial merges run between context checks.
const ctxCheckInterval = 1024

// NormalizeContext is Normalize with bounds for untrusted trees. It fails with
// ErrTooManyTerms as soon as any intermediate polynomial holds more than
// maxTerms terms, and with the context error once ctx is done. maxTerms <= 0
// disables the term budget. The result, when there is one, equals Normalize(e).
func NormalizeContext(ctx context.Context, e Expr, maxTerms int) (*Polynomial, error) {
	n := &normalizer{ctx: ctx, maxTerms: maxTerms}
	return n.normalize(e)
}

// normalizer carries the bounds of one normalization. The zero value is
// unbounded and never fails.
type normalizer struct {
	ctx      context.Context
	maxTerms int
	merges   int
}

func unbounded() *normalizer { return &normalizer{} }

func (n *normalizer) normalize(e Expr) (*Polynomial, error) {
	switch t := e.(type) {
	case *Var:
		return PolynomialOf(NewMonomial(N(1), t.name)), nil
	case *Const:
		return PolynomialOf(NewMonomial(t.value)), nil
	case *Plus:
		l, r, err := n.children(t.left, t.right)
		if err != nil {
			return nil, err
		}
		return n.add(l, r)
	case *Times:
		l, r, err := n.children(t.left, t.right)
		if err != nil {
			return nil, err
		}
		return n.mul(l, r)
	}
	panic("polynorm: unknown expression node")
}

func (n *normalizer) children(left, right Expr) (*Polynomial, *Polynomial, error) {
	if err := n.alive(); err != nil {
		return nil, nil, err
	}
	l, err := n.normalize(left)
	if err != nil {
		return nil, nil, err
	}
	r, err := n.normalize(right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (n *normalizer) add(a, b *Polynomial) (*Polynomial, error) {
	out := Zero()
	for _, src := range [2]*Polynomial{a, b} {
		for _, m := range src.terms {
			if err := n.merge(out, m); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (n *normalizer) mul(a, b *Polynomial) (*Polynomial, error) {
	out := Zero()
	for _, ma := range a.terms {
		for _, mb := range b.terms {
			if err := n.merge(out, MultiplyMonomials(ma, mb)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// merge adds m into the accumulator out and enforces the bounds.
func (n *normalizer) merge(out *Polynomial, m *Monomial) error {
	out.addMonomial(m)
	if n.maxTerms > 0 && len(out.terms) > n.maxTerms {
		return fmt.Errorf("polynomial exceeds %d terms: %w", n.maxTerms, ErrTooManyTerms)
	}
	n.merges++
	if n.merges%ctxCheckInterval == 0 {
		return n.alive()
	}
	return nil
}

func (n *normalizer) alive() error {
	if n.ctx == nil {
		return nil
	}
	if err := n.ctx.Err(); err != nil {
		return fmt.Errorf("normalization stopped: %w", err)
	}
	return nil
}
