package polynorm_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pn "github.com/njchilds90/polynorm"
)

// binomials builds (a0+b0)(a1+b1)...; its normal form has 3^n terms.
func binomials(n int) pn.Expr {
	var e pn.Expr = pn.PlusOf(pn.V("a0"), pn.V("b0"))
	for i := 1; i < n; i++ {
		e = pn.TimesOf(e, pn.PlusOf(pn.V(fmt.Sprintf("a%d", i)), pn.V(fmt.Sprintf("b%d", i))))
	}
	return e
}

func TestNormalizeContext_MatchesNormalize(t *testing.T) {
	for name, e := range referenceExprs() {
		t.Run(name, func(t *testing.T) {
			p, err := pn.NormalizeContext(context.Background(), e, 0)
			require.NoError(t, err)
			assert.True(t, pn.PolynomialsEqual(pn.Normalize(e), p))
		})
	}
}

func TestNormalizeContext_TermBudget(t *testing.T) {
	e := binomials(4)
	assert.Len(t, pn.Normalize(e).Terms(), 81)

	_, err := pn.NormalizeContext(context.Background(), e, 80)
	require.ErrorIs(t, err, pn.ErrTooManyTerms)
	assert.EqualError(t, err, "polynomial exceeds 80 terms: too many terms")

	p, err := pn.NormalizeContext(context.Background(), e, 81)
	require.NoError(t, err)
	assert.Len(t, p.Terms(), 81)
}

func TestNormalizeContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pn.NormalizeContext(ctx, binomials(3), 0)
	require.ErrorIs(t, err, context.Canceled)

	// Leaves never consult the context.
	p, err := pn.NormalizeContext(ctx, pn.V("x"), 0)
	require.NoError(t, err)
	assert.Equal(t, "0 + 1x^1", p.String())
}
