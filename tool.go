package polynorm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

type ToolResponse struct {
	Result any    `json:"result,omitempty"`
	LaTeX  string `json:"latex,omitempty"`
	String string `json:"string,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Limits bounds the work a tool call may do on untrusted input.
type Limits struct {
	// MaxDepth caps the nesting of expression parameters.
	MaxDepth int
	// MaxTerms caps every intermediate polynomial; <= 0 disables it.
	MaxTerms int
}

// DefaultLimits returns the limits used by HandleToolCall.
func DefaultLimits() Limits {
	return Limits{MaxDepth: MaxDepth, MaxTerms: DefaultMaxTerms}
}

// DecodeToolRequest reads exactly one JSON tool request from r. Unknown
// fields and trailing data are rejected; numbers keep their exact text.
func DecodeToolRequest(r io.Reader) (ToolRequest, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var req ToolRequest
	if err := dec.Decode(&req); err != nil {
		return ToolRequest{}, err
	}
	if dec.More() {
		return ToolRequest{}, errors.New("invalid JSON: trailing data")
	}
	return req, nil
}

// HandleToolCall dispatches one tool call under DefaultLimits. Failures are
// reported in ToolResponse.Error, never as a Go error.
func HandleToolCall(req ToolRequest) ToolResponse {
	return HandleToolCallContext(context.Background(), req, DefaultLimits())
}

// HandleToolCallContext is HandleToolCall with explicit limits. Normalization
// stops when ctx is done.
func HandleToolCallContext(ctx context.Context, req ToolRequest, limits Limits) ToolResponse {
	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	normalize := func(e Expr) (*Polynomial, error) {
		return NormalizeContext(ctx, e, limits.MaxTerms)
	}
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := asObject(v)
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		e, err := FromJSONWithLimit(val, maxDepth)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}
		return e, nil
	}
	getEnv := func(key string) (Env, error) {
		v, ok := req.Params[key]
		if !ok {
			return Env{}, nil
		}
		raw, ok := asObject(v)
		if !ok {
			return nil, fmt.Errorf("param %s must be an object", key)
		}
		env := make(Env, len(raw))
		for name, val := range raw {
			n, err := decodeNum(val)
			if err != nil {
				return nil, fmt.Errorf("param %s.%s: %w", key, name, err)
			}
			env[name] = n
		}
		return env, nil
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "normalize":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		p, err := normalize(e)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: p.Wire(), String: p.String(), LaTeX: p.LaTeX()}

	case "evaluate":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		env, err := getEnv("env")
		if err != nil {
			return fail(err)
		}
		v, err := Evaluate(e, env)
		if err != nil {
			var ub *UnboundVariableError
			if errors.As(err, &ub) {
				return ToolResponse{Error: err.Error(), Result: map[string]any{"unbound": ub.Name}}
			}
			return fail(err)
		}
		return ToolResponse{Result: v.String(), String: v.String(), LaTeX: v.LaTeX()}

	case "render":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		s := Render(e)
		return ToolResponse{Result: s, String: s}

	case "to_latex":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		p, err := normalize(e)
		if err != nil {
			return fail(err)
		}
		l := p.LaTeX()
		return ToolResponse{Result: l, LaTeX: l}

	case "equal":
		a, err := getExpr("a")
		if err != nil {
			return fail(err)
		}
		b, err := getExpr("b")
		if err != nil {
			return fail(err)
		}
		pa, err := normalize(a)
		if err != nil {
			return fail(err)
		}
		pb, err := normalize(b)
		if err != nil {
			return fail(err)
		}
		eq := PolynomialsEqual(pa, pb)
		if algebraic, _ := req.Params["algebraic"].(bool); algebraic {
			eq = PolynomialsEquivalent(pa, pb)
		}
		return ToolResponse{Result: eq, String: fmt.Sprintf("%s == %s: %t", pa, pb, eq)}

	case "variables":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		vars := Variables(e)
		return ToolResponse{Result: vars, String: fmt.Sprint(vars)}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

var toolNames = []string{"normalize", "evaluate", "render", "to_latex", "equal", "variables", "mcp_spec"}

// ToolNames lists every tool HandleToolCall understands.
func ToolNames() []string {
	out := make([]string, len(toolNames))
	copy(out, toolNames)
	return out
}

// IsTool reports whether name is a known tool.
func IsTool(name string) bool {
	for _, t := range toolNames {
		if t == name {
			return true
		}
	}
	return false
}

func MCPToolSpec() string {
	expr := map[string]string{"expr": "object"}
	tools := []map[string]any{
		ts("normalize", "Normalize an expression tree to its canonical polynomial", []string{"expr"}, expr),
		ts("evaluate", "Evaluate an expression tree. env maps variable names to numbers or numeric strings", []string{"expr"}, map[string]string{"expr": "object", "env": "object"}),
		ts("render", "Render an expression tree as text", []string{"expr"}, expr),
		ts("to_latex", "Render the normalized polynomial as LaTeX", []string{"expr"}, expr),
		ts("equal", "Compare two expression trees by their normalized polynomials. algebraic=true ignores zero-coefficient terms", []string{"a", "b"}, map[string]string{"a": "object", "b": "object", "algebraic": "boolean"}),
		ts("variables", "Return the free variable names of an expression tree", []string{"expr"}, expr),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]any{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]any {
	properties := map[string]any{}
	for k, typ := range props {
		properties[k] = map[string]any{"type": typ}
	}
	return map[string]any{
		"name":        name,
		"description": description,
		"inputSchema": map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
