// Package polynorm normalizes arithmetic expression trees into canonical
// polynomials so that structurally different trees can be compared exactly.
//
// Expressions are built from four node kinds: variables, exact rational
// constants, binary addition and binary multiplication. Normalize distributes
// multiplication over addition and merges like monomials; two trees are equal
// when their normalized term sets are equal.
//
// Normalization is a plain structural recursion without memoization. Each
// Times node costs terms(left) * terms(right) merges, so deeply nested
// products grow multiplicatively.
package polynorm

import (
	"sort"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is one of *Var, *Const, *Plus or *Times. The set is closed.
type Expr interface {
	String() string
	exprNode()
}

// Env binds variable names to values for Evaluate.
type Env map[string]*Num

// ============================================================
// Var: variable reference
// ============================================================

type Var struct{ name string }

func V(name string) *Var { return &Var{name: name} }

func (v *Var) Name() string   { return v.name }
func (v *Var) String() string { return Render(v) }
func (*Var) exprNode()        {}

// ============================================================
// Const: exact constant
// ============================================================

type Const struct{ value *Num }

func C(value *Num) *Const    { return &Const{value: numCopy(value)} }
func CInt(n int64) *Const    { return &Const{value: N(n)} }
func (c *Const) Value() *Num { return numCopy(c.value) }
func (c *Const) String() string {
	return Render(c)
}
func (*Const) exprNode() {}

// ============================================================
// Plus / Times: binary operators
// ============================================================

type Plus struct{ left, right Expr }

func PlusOf(left, right Expr) *Plus { return &Plus{left: left, right: right} }

func (p *Plus) Left() Expr     { return p.left }
func (p *Plus) Right() Expr    { return p.right }
func (p *Plus) String() string { return Render(p) }
func (*Plus) exprNode()        {}

type Times struct{ left, right Expr }

func TimesOf(left, right Expr) *Times { return &Times{left: left, right: right} }

func (t *Times) Left() Expr     { return t.left }
func (t *Times) Right() Expr    { return t.right }
func (t *Times) String() string { return Render(t) }
func (*Times) exprNode()        {}

// ============================================================
// Normalization
// ============================================================

// Normalize converts e into its canonical polynomial.
func Normalize(e Expr) *Polynomial {
	p, _ := unbounded().normalize(e)
	return p
}

// ExpressionsEqual reports whether a and b normalize to equal polynomials.
func ExpressionsEqual(a, b Expr) bool {
	return PolynomialsEqual(Normalize(a), Normalize(b))
}

// ExpressionsEquivalent compares normalized polynomials ignoring
// zero-coefficient terms.
func ExpressionsEquivalent(a, b Expr) bool {
	return PolynomialsEquivalent(Normalize(a), Normalize(b))
}

// ============================================================
// Evaluation
// ============================================================

// Evaluate computes e under env. A variable missing from env yields an
// *UnboundVariableError.
func Evaluate(e Expr, env Env) (*Num, error) {
	switch n := e.(type) {
	case *Var:
		v, ok := env[n.name]
		if !ok {
			return nil, &UnboundVariableError{Name: n.name}
		}
		return numCopy(v), nil
	case *Const:
		return numCopy(n.value), nil
	case *Plus:
		l, r, err := evalBoth(n.left, n.right, env)
		if err != nil {
			return nil, err
		}
		return numAdd(l, r), nil
	case *Times:
		l, r, err := evalBoth(n.left, n.right, env)
		if err != nil {
			return nil, err
		}
		return numMul(l, r), nil
	}
	panic("polynorm: unknown expression node")
}

func evalBoth(left, right Expr, env Env) (*Num, *Num, error) {
	l, err := Evaluate(left, env)
	if err != nil {
		return nil, nil, err
	}
	r, err := Evaluate(right, env)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// ============================================================
// Rendering
// ============================================================

// Render prints e. Sums are parenthesized, products are not: (x+2)*y renders
// as "(x+2)*y" but x*(y*z) renders as "x*y*z".
func Render(e Expr) string {
	switch n := e.(type) {
	case *Var:
		return n.name
	case *Const:
		return n.value.String()
	case *Plus:
		return "(" + Render(n.left) + "+" + Render(n.right) + ")"
	case *Times:
		return Render(n.left) + "*" + Render(n.right)
	}
	panic("polynorm: unknown expression node")
}

// ============================================================
// Tree utilities
// ============================================================

// Variables returns the sorted free variable names of e.
func Variables(e Expr) []string {
	seen := map[string]struct{}{}
	collectVars(e, seen)
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func collectVars(e Expr, out map[string]struct{}) {
	switch n := e.(type) {
	case *Var:
		out[n.name] = struct{}{}
	case *Plus:
		collectVars(n.left, out)
		collectVars(n.right, out)
	case *Times:
		collectVars(n.left, out)
		collectVars(n.right, out)
	}
}

// Depth is the number of nodes on the longest root-to-leaf path.
func Depth(e Expr) int {
	switch n := e.(type) {
	case *Plus:
		return 1 + max(Depth(n.left), Depth(n.right))
	case *Times:
		return 1 + max(Depth(n.left), Depth(n.right))
	}
	return 1
}
