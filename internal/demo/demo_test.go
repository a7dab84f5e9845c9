package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polynorm"
)

func TestSamples_Render(t *testing.T) {
	want := map[string]string{
		"e1": "(x+2)*y",
		"e2": "(x+2*y)",
		"e6": "(x+2)*(x+1)",
		"e7": "x*y",
		"e8": "y*x",
	}
	for _, s := range Samples() {
		if r, ok := want[s.Name]; ok {
			assert.Equal(t, r, polynorm.Render(s.Expr), s.Name)
		}
	}
}

func TestCompare(t *testing.T) {
	got := Compare(Samples())
	require.Len(t, got, 4)

	assert.Equal(t, Comparison{Left: "e1", Right: "e2", Equal: false}, got[0])
	assert.Equal(t, Comparison{Left: "e3", Right: "e4", Equal: false}, got[1])
	assert.Equal(t, Comparison{Left: "e5", Right: "e6", Equal: true}, got[2])
	assert.Equal(t, Comparison{Left: "e7", Right: "e8", Equal: true}, got[3])
}
