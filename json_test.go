package polynorm_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	pn "github.com/njchilds90/polynorm"
)

func TestToJSON_RoundTrip(t *testing.T) {
	for name, e := range referenceExprs() {
		t.Run(name, func(t *testing.T) {
			s, err := pn.ToJSON(e)
			require.NoError(t, err)

			back, err := pn.UnmarshalExpr([]byte(s))
			require.NoError(t, err)
			assert.Equal(t, pn.Render(e), pn.Render(back))
		})
	}
}

func TestFromJSON_Shapes(t *testing.T) {
	doc := `{"type":"times","left":{"type":"plus","left":{"type":"var","name":"x"},"right":{"type":"const","value":2}},"right":{"type":"const","value":"1/2"}}`

	e, err := pn.UnmarshalExpr([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "(x+2)*1/2", pn.Render(e))
}

func TestFromJSON_LargeIntegerConstant(t *testing.T) {
	e, err := pn.UnmarshalExpr([]byte(`{"type":"const","value":12345678901234567891}`))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567891", pn.Render(e))

	e, err = pn.FromJSON(map[string]any{"type": "const", "value": uint64(12345678901234567891)})
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567891", pn.Render(e))

	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte("type: const\nvalue: 12345678901234567891\n"), &tree))
	e, err = pn.FromJSON(tree)
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567891", pn.Render(e))
}

func TestUnmarshalExpr_RejectsTrailingData(t *testing.T) {
	_, err := pn.UnmarshalExpr([]byte(`{"type":"var","name":"x"} {"type":"var","name":"y"}`))
	var de *pn.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, err.Error(), "trailing data")
}

func TestFromJSON_DecimalConstant(t *testing.T) {
	e, err := pn.UnmarshalExpr([]byte(`{"type":"const","value":0.1}`))
	require.NoError(t, err)
	assert.Equal(t, "1/10", pn.Render(e))
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"missing type", `{"name":"x"}`, "missing 'type' field"},
		{"unknown type", `{"type":"minus"}`, "unknown expression type: minus"},
		{"empty var", `{"type":"var","name":""}`, "var: 'name' must be a non-empty string"},
		{"bad const", `{"type":"const","value":"x"}`, "const: invalid number"},
		{"missing child", `{"type":"plus","left":{"type":"var","name":"x"}}`, `plus: missing "right"`},
		{"nested path", `{"type":"plus","left":{"type":"var","name":"x"},"right":{"type":"times","left":{"type":"var"},"right":{"type":"var","name":"y"}}}`, "plus.right.times.left.var"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pn.UnmarshalExpr([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, errors.Is(err, pn.ErrInvalidExpression))
		})
	}
}

func TestFromJSON_DepthLimit(t *testing.T) {
	var e pn.Expr = pn.V("x")
	for i := 0; i < 10; i++ {
		e = pn.PlusOf(e, pn.CInt(1))
	}

	_, err := pn.FromJSONWithLimit(pn.ToMap(e), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, pn.ErrTooDeep)

	_, err = pn.FromJSONWithLimit(pn.ToMap(e), 11)
	assert.NoError(t, err)
}

func TestFromJSON_YAMLDocument(t *testing.T) {
	doc := `
type: plus
left: {type: var, name: x}
right:
  type: times
  left: {type: const, value: 2}
  right: {type: var, name: y}
`
	var m map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &m))

	e, err := pn.FromJSON(m)
	require.NoError(t, err)
	assert.Equal(t, "(x+2*y)", pn.Render(e))
}

func TestPolynomial_JSONRoundTrip(t *testing.T) {
	p := pn.Normalize(referenceExprs()["e6"])

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"string":"2 + 3x^1 + 1x^2"`), string(b))

	var back pn.Polynomial
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, pn.PolynomialsEqual(p, &back))
	assert.Equal(t, p.String(), back.String())
}

func TestPolynomial_UnmarshalRejectsBadCoefficient(t *testing.T) {
	var p pn.Polynomial
	err := json.Unmarshal([]byte(`{"terms":[{"coefficient":"nope","powers":{}}]}`), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid coefficient")
}
