package polynorm_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pn "github.com/njchilds90/polynorm"
)

func call(t *testing.T, raw string) pn.ToolResponse {
	t.Helper()
	req, err := pn.DecodeToolRequest(strings.NewReader(raw))
	require.NoError(t, err)
	return pn.HandleToolCall(req)
}

const xPlusTwoTimesY = `{"type":"times","left":{"type":"plus","left":{"type":"var","name":"x"},"right":{"type":"const","value":"2"}},"right":{"type":"var","name":"y"}}`

func TestHandleToolCall_Normalize(t *testing.T) {
	resp := call(t, `{"tool":"normalize","params":{"expr":`+xPlusTwoTimesY+`}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "0 + 2y^1 + 1x^1y^1", resp.String)
	assert.Equal(t, "0 + 2 y + 1 x y", resp.LaTeX)
}

func TestHandleToolCall_Evaluate(t *testing.T) {
	resp := call(t, `{"tool":"evaluate","params":{"expr":`+xPlusTwoTimesY+`,"env":{"x":2,"y":"3"}}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "12", resp.Result)
}

func TestHandleToolCall_EvaluateLargeIntegers(t *testing.T) {
	resp := call(t, `{"tool":"evaluate","params":{"expr":{"type":"var","name":"x"},"env":{"x":9007199254740993}}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, "9007199254740993", resp.Result)
}

func TestHandleToolCallContext_TermBudget(t *testing.T) {
	req := pn.ToolRequest{Tool: "equal", Params: map[string]any{
		"a": pn.ToMap(binomials(3)),
		"b": pn.ToMap(pn.V("x")),
	}}

	resp := pn.HandleToolCallContext(context.Background(), req, pn.Limits{MaxDepth: pn.MaxDepth, MaxTerms: 10})
	assert.Equal(t, "polynomial exceeds 10 terms: too many terms", resp.Error)
	assert.Nil(t, resp.Result)

	resp = pn.HandleToolCallContext(context.Background(), req, pn.Limits{})
	require.Empty(t, resp.Error)
	assert.Equal(t, false, resp.Result)
}

func TestDecodeToolRequest(t *testing.T) {
	req, err := pn.DecodeToolRequest(strings.NewReader(`{"tool":"render","params":{"expr":{"type":"const","value":12345678901234567891}}}`))
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567891", pn.HandleToolCall(req).String)

	_, err = pn.DecodeToolRequest(strings.NewReader(`{"tool":"render","extra":1}`))
	assert.ErrorContains(t, err, "extra")

	_, err = pn.DecodeToolRequest(strings.NewReader(`{"tool":"render"} {}`))
	assert.EqualError(t, err, "invalid JSON: trailing data")
}

func TestHandleToolCall_EvaluateUnbound(t *testing.T) {
	resp := call(t, `{"tool":"evaluate","params":{"expr":`+xPlusTwoTimesY+`,"env":{"x":2}}}`)
	assert.Equal(t, `unbound variable "y"`, resp.Error)
	assert.Equal(t, map[string]any{"unbound": "y"}, resp.Result)
}

func TestHandleToolCall_Equal(t *testing.T) {
	xy := `{"type":"times","left":{"type":"var","name":"x"},"right":{"type":"var","name":"y"}}`
	yx := `{"type":"times","left":{"type":"var","name":"y"},"right":{"type":"var","name":"x"}}`

	resp := call(t, `{"tool":"equal","params":{"a":`+xy+`,"b":`+yx+`}}`)
	require.Empty(t, resp.Error)
	assert.Equal(t, true, resp.Result)

	resp = call(t, `{"tool":"equal","params":{"a":`+xy+`,"b":`+xPlusTwoTimesY+`}}`)
	assert.Equal(t, false, resp.Result)
}

func TestHandleToolCall_EqualAlgebraic(t *testing.T) {
	x := `{"type":"var","name":"x"}`
	xPlusZero := `{"type":"plus","left":{"type":"var","name":"x"},"right":{"type":"const","value":0}}`

	resp := call(t, `{"tool":"equal","params":{"a":`+x+`,"b":`+xPlusZero+`}}`)
	assert.Equal(t, false, resp.Result)

	resp = call(t, `{"tool":"equal","params":{"a":`+x+`,"b":`+xPlusZero+`,"algebraic":true}}`)
	assert.Equal(t, true, resp.Result)
}

func TestHandleToolCall_RenderAndVariables(t *testing.T) {
	resp := call(t, `{"tool":"render","params":{"expr":`+xPlusTwoTimesY+`}}`)
	assert.Equal(t, "(x+2)*y", resp.Result)

	resp = call(t, `{"tool":"variables","params":{"expr":`+xPlusTwoTimesY+`}}`)
	assert.Equal(t, []string{"x", "y"}, resp.Result)
}

func TestHandleToolCall_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"unknown tool", `{"tool":"factor","params":{}}`, "unknown tool: factor"},
		{"missing expr", `{"tool":"normalize","params":{}}`, "missing param: expr"},
		{"bad expr type", `{"tool":"render","params":{"expr":"x"}}`, "invalid type for param expr"},
		{"bad env", `{"tool":"evaluate","params":{"expr":{"type":"var","name":"x"},"env":{"x":true}}}`, "param env.x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, tt.raw)
			assert.Contains(t, resp.Error, tt.want)
		})
	}
}

func TestMCPToolSpec_ListsEveryTool(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(pn.MCPToolSpec()), &spec))

	names := make([]string, len(spec.Tools))
	for i, tool := range spec.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, pn.ToolNames(), names)
}
