// Package demo holds the reference expressions e1..e8 and the comparisons
// printed by the demo command and the examples program.
package demo

import (
	"github.com/njchilds90/polynorm"
)

// Sample is a named reference expression.
type Sample struct {
	Name string
	Expr polynorm.Expr
}

// Comparison pairs two samples whose normalized forms are compared.
type Comparison struct {
	Left, Right string
	Equal       bool
}

// Samples returns e1..e8 in order.
func Samples() []Sample {
	x, y := polynorm.V("x"), polynorm.V("y")
	plus, times, c := polynorm.PlusOf, polynorm.TimesOf, polynorm.CInt

	return []Sample{
		{"e1", times(plus(x, c(2)), y)},
		{"e2", plus(x, times(c(2), y))},
		{"e3", plus(times(x, x), plus(times(x, y), times(y, times(y, y))))},
		{"e4", plus(times(x, x), plus(times(x, y), times(y, plus(y, y))))},
		{"e5", plus(times(x, x), plus(times(c(3), x), c(2)))},
		{"e6", times(plus(x, c(2)), plus(x, c(1)))},
		{"e7", times(x, y)},
		{"e8", times(y, x)},
	}
}

// Compare checks the pairs (e1,e2), (e3,e4), (e5,e6) and (e7,e8).
func Compare(samples []Sample) []Comparison {
	var out []Comparison
	for i := 0; i+1 < len(samples); i += 2 {
		a, b := samples[i], samples[i+1]
		out = append(out, Comparison{
			Left:  a.Name,
			Right: b.Name,
			Equal: polynorm.ExpressionsEqual(a.Expr, b.Expr),
		})
	}
	return out
}
