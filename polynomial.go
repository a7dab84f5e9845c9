package polynorm

import (
	"sort"
	"strings"
)

// ============================================================
// Polynomial: sum of monomials
// ============================================================

// Polynomial is an unordered sum of monomials whose power products are
// pairwise distinct. Results of Add and Mul always keep the constant term
// seeded by Zero, and terms whose coefficients cancel to zero are retained.
type Polynomial struct {
	terms []*Monomial
}

// Zero returns the polynomial holding the single term 0 (empty power product).
func Zero() *Polynomial {
	return &Polynomial{terms: []*Monomial{NewMonomial(N(0))}}
}

// PolynomialOf wraps a single monomial.
func PolynomialOf(m *Monomial) *Polynomial {
	return &Polynomial{terms: []*Monomial{m.clone()}}
}

// Terms returns copies of the terms in accumulation order.
func (p *Polynomial) Terms() []*Monomial {
	out := make([]*Monomial, len(p.terms))
	for i, m := range p.terms {
		out[i] = m.clone()
	}
	return out
}

func (p *Polynomial) Len() int { return len(p.terms) }

// Term returns a copy of the term with power product equal to pp.
func (p *Polynomial) Term(pp PowerProduct) (*Monomial, bool) {
	for _, m := range p.terms {
		if PowerProductsEqual(m.pprod, pp) {
			return m.clone(), true
		}
	}
	return nil, false
}

// Coefficient returns the coefficient of coefficient*vars in p, or nil when
// no such term exists. Repeated names raise the exponent as in NewMonomial.
func (p *Polynomial) Coefficient(vars ...string) *Num {
	m, ok := p.Term(NewMonomial(N(1), vars...).pprod)
	if !ok {
		return nil
	}
	return m.coefficient
}

// addMonomial merges m into p: the coefficient of an existing term with the
// same power product is updated in place, otherwise a copy of m is appended.
// p must be an accumulator owned by the caller.
func (p *Polynomial) addMonomial(m *Monomial) {
	for _, t := range p.terms {
		if PowerProductsEqual(t.pprod, m.pprod) {
			t.coefficient.addInPlace(m.coefficient)
			return
		}
	}
	p.terms = append(p.terms, m.clone())
}

// Add returns a + b.
func Add(a, b *Polynomial) *Polynomial {
	p, _ := unbounded().add(a, b)
	return p
}

// Mul returns a * b by merging every pairwise product of terms. The cost is
// len(a.terms) * len(b.terms) merges, each a linear scan of the accumulator.
func Mul(a, b *Polynomial) *Polynomial {
	p, _ := unbounded().mul(a, b)
	return p
}

// PolynomialsEqual compares term sets: every term of a must occur in b and
// every term of b in a. Order is irrelevant; zero-coefficient terms count.
func PolynomialsEqual(a, b *Polynomial) bool {
	return containsAll(a, b) && containsAll(b, a)
}

// PolynomialsEquivalent is PolynomialsEqual with zero-coefficient terms
// ignored on both sides, i.e. equality of the polynomials as functions.
// Products seed zero terms that a distributed sum does not, so x*(y+z) and
// x*y+x*z are equivalent but not equal.
func PolynomialsEquivalent(a, b *Polynomial) bool {
	na, nb := a.nonZero(), b.nonZero()
	return containsAll(na, nb) && containsAll(nb, na)
}

func (p *Polynomial) nonZero() *Polynomial {
	out := &Polynomial{}
	for _, m := range p.terms {
		if !m.coefficient.IsZero() {
			out.terms = append(out.terms, m)
		}
	}
	return out
}

func containsAll(hay, needles *Polynomial) bool {
	for _, n := range needles.terms {
		found := false
		for _, h := range hay.terms {
			if MonomialsEqual(h, n) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Evaluate substitutes env into every term and sums the results.
func (p *Polynomial) Evaluate(env Env) (*Num, error) {
	sum := N(0)
	for _, m := range p.terms {
		v, err := m.Evaluate(env)
		if err != nil {
			return nil, err
		}
		sum = numAdd(sum, v)
	}
	return sum, nil
}

// Variables returns the sorted set of variables appearing in any term.
func (p *Polynomial) Variables() []string {
	seen := map[string]struct{}{}
	for _, m := range p.terms {
		for _, v := range m.pprod.order {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Renormalize sums p's terms again, treating each term as an atomic
// polynomial. For any p returned by Normalize the result is equal to p.
func (p *Polynomial) Renormalize() *Polynomial {
	if len(p.terms) == 0 {
		return Zero()
	}
	out := PolynomialOf(p.terms[0])
	for _, m := range p.terms[1:] {
		out = Add(out, PolynomialOf(m))
	}
	return out
}

func (p *Polynomial) String() string {
	parts := make([]string, len(p.terms))
	for i, m := range p.terms {
		parts[i] = m.String()
	}
	return strings.Join(parts, " + ")
}

// PolynomialToString is the function form of (*Polynomial).String.
func PolynomialToString(p *Polynomial) string { return p.String() }

func (p *Polynomial) LaTeX() string {
	parts := make([]string, len(p.terms))
	for i, m := range p.terms {
		parts[i] = m.LaTeX()
	}
	return strings.Join(parts, " + ")
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
