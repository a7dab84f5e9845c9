package polynorm

import (
	"fmt"
	"strings"
)

// ============================================================
// PowerProduct: variable -> exponent
// ============================================================

// PowerProduct maps variable names to positive exponents. A variable absent
// from the product has exponent zero; zero exponents are never stored.
//
// Variables are remembered in the order they were first added so String is
// stable, but equality never looks at that order.
type PowerProduct struct {
	exps  map[string]int
	order []string
}

func newPowerProduct() PowerProduct {
	return PowerProduct{exps: map[string]int{}}
}

// bump raises name's exponent by k (k > 0).
func (pp *PowerProduct) bump(name string, k int) {
	if k <= 0 {
		return
	}
	if _, seen := pp.exps[name]; !seen {
		pp.order = append(pp.order, name)
	}
	pp.exps[name] += k
}

// Exponent returns the exponent of name, 0 when absent.
func (pp PowerProduct) Exponent(name string) int { return pp.exps[name] }

// Len is the number of distinct variables.
func (pp PowerProduct) Len() int { return len(pp.order) }

// Vars returns variable names in insertion order.
func (pp PowerProduct) Vars() []string {
	out := make([]string, len(pp.order))
	copy(out, pp.order)
	return out
}

// Map returns a copy of the exponent mapping.
func (pp PowerProduct) Map() map[string]int {
	out := make(map[string]int, len(pp.exps))
	for k, v := range pp.exps {
		out[k] = v
	}
	return out
}

// Degree is the total degree.
func (pp PowerProduct) Degree() int {
	d := 0
	for _, e := range pp.exps {
		d += e
	}
	return d
}

func (pp PowerProduct) clone() PowerProduct {
	out := PowerProduct{exps: make(map[string]int, len(pp.exps)), order: make([]string, len(pp.order))}
	copy(out.order, pp.order)
	for k, v := range pp.exps {
		out.exps[k] = v
	}
	return out
}

// PowerProductsEqual compares the mappings, ignoring insertion order.
func PowerProductsEqual(a, b PowerProduct) bool {
	if len(a.exps) != len(b.exps) {
		return false
	}
	for k, v := range a.exps {
		if w, ok := b.exps[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// ============================================================
// Monomial: coefficient * power product
// ============================================================

type Monomial struct {
	coefficient *Num
	pprod       PowerProduct
}

// NewMonomial builds coefficient * vars[0] * vars[1] * ...; a repeated name
// increments that variable's exponent.
func NewMonomial(coefficient *Num, vars ...string) *Monomial {
	m := &Monomial{coefficient: numCopy(coefficient), pprod: newPowerProduct()}
	for _, v := range vars {
		m.pprod.bump(v, 1)
	}
	return m
}

// NewMonomialPowers builds a monomial from an explicit exponent map. Entries
// with exponent <= 0 are dropped. Variables are ordered by the order slice
// first, then any remaining keys in sorted order.
func NewMonomialPowers(coefficient *Num, powers map[string]int, order ...string) *Monomial {
	m := &Monomial{coefficient: numCopy(coefficient), pprod: newPowerProduct()}
	for _, v := range order {
		if _, done := m.pprod.exps[v]; done {
			continue
		}
		m.pprod.bump(v, powers[v])
	}
	for _, v := range sortedKeys(powers) {
		if _, done := m.pprod.exps[v]; done {
			continue
		}
		m.pprod.bump(v, powers[v])
	}
	return m
}

func (m *Monomial) Coefficient() *Num          { return numCopy(m.coefficient) }
func (m *Monomial) PowerProduct() PowerProduct { return m.pprod.clone() }

func (m *Monomial) clone() *Monomial {
	return &Monomial{coefficient: numCopy(m.coefficient), pprod: m.pprod.clone()}
}

// MonomialsEqual reports equal power products and equal coefficients. A zero
// coefficient is not treated specially.
func MonomialsEqual(a, b *Monomial) bool {
	return PowerProductsEqual(a.pprod, b.pprod) && NumsEqual(a.coefficient, b.coefficient)
}

// MultiplyMonomials returns a fresh monomial; neither operand is modified.
func MultiplyMonomials(a, b *Monomial) *Monomial {
	c := &Monomial{coefficient: numMul(a.coefficient, b.coefficient), pprod: newPowerProduct()}
	for _, v := range a.pprod.order {
		c.pprod.bump(v, a.pprod.exps[v]+b.pprod.exps[v])
	}
	for _, v := range b.pprod.order {
		if _, inA := a.pprod.exps[v]; !inA {
			c.pprod.bump(v, b.pprod.exps[v])
		}
	}
	return c
}

// Evaluate substitutes env into the monomial.
func (m *Monomial) Evaluate(env Env) (*Num, error) {
	out := numCopy(m.coefficient)
	for _, v := range m.pprod.order {
		x, ok := env[v]
		if !ok {
			return nil, &UnboundVariableError{Name: v}
		}
		out = numMul(out, numPow(x, m.pprod.exps[v]))
	}
	return out, nil
}

// String renders the coefficient followed by var^exp for each variable, with
// no separators: "2x^1y^2".
func (m *Monomial) String() string {
	var sb strings.Builder
	sb.WriteString(m.coefficient.String())
	for _, v := range m.pprod.order {
		fmt.Fprintf(&sb, "%s^%d", v, m.pprod.exps[v])
	}
	return sb.String()
}

func (m *Monomial) LaTeX() string {
	parts := []string{m.coefficient.LaTeX()}
	for _, v := range m.pprod.order {
		if e := m.pprod.exps[v]; e == 1 {
			parts = append(parts, v)
		} else {
			parts = append(parts, fmt.Sprintf("%s^{%d}", v, e))
		}
	}
	return strings.Join(parts, " ")
}
