package polynorm

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Num: exact rational number
// ============================================================

// Num is an exact rational coefficient. The zero value is not usable; build
// one with N, F or ParseNum.
type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F returns p/q. It panics when q is zero.
func F(p, q int64) *Num {
	if q == 0 {
		panic("polynorm: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// ParseNum accepts integers ("-3"), fractions ("1/3") and finite decimals ("0.25").
func ParseNum(s string) (*Num, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty number")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &Num{val: r}, nil
}

func (n *Num) IsZero() bool    { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool     { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsInteger() bool { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat   { return new(big.Rat).Set(n.val) }
func (n *Num) Float64() float64 {
	f, _ := n.val.Float64()
	return f
}

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

// NumsEqual reports whether a and b denote the same rational.
func NumsEqual(a, b *Num) bool { return a.val.Cmp(b.val) == 0 }

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numCopy(a *Num) *Num   { return &Num{val: new(big.Rat).Set(a.val)} }

func numPow(a *Num, exp int) *Num {
	out := N(1)
	for i := 0; i < exp; i++ {
		out = numMul(out, a)
	}
	return out
}

// addInPlace accumulates b into n. Only accumulators owned by the caller may
// be passed as n.
func (n *Num) addInPlace(b *Num) { n.val.Add(n.val, b.val) }
