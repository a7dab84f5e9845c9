package polynorm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// MaxDepth bounds the nesting accepted by FromJSON so that hostile input
// cannot exhaust the stack during decoding or normalization.
const MaxDepth = 512

// ============================================================
// JSON Serialization
// ============================================================

func toJSON(e Expr) map[string]any {
	switch n := e.(type) {
	case *Var:
		return map[string]any{"type": "var", "name": n.name}
	case *Const:
		return map[string]any{"type": "const", "value": n.value.String()}
	case *Plus:
		return map[string]any{"type": "plus", "left": toJSON(n.left), "right": toJSON(n.right)}
	case *Times:
		return map[string]any{"type": "times", "left": toJSON(n.left), "right": toJSON(n.right)}
	}
	panic("polynorm: unknown expression node")
}

// ToMap returns the generic object form of e, suitable for JSON or YAML encoders.
func ToMap(e Expr) map[string]any { return toJSON(e) }

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(toJSON(e))
	return string(b), err
}

// UnmarshalExpr decodes a JSON object into an expression tree. Numeric
// constants keep their exact decimal text.
func UnmarshalExpr(data []byte) (Expr, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &DecodeError{Reason: err.Error()}
	}
	if dec.More() {
		return nil, &DecodeError{Reason: "trailing data after expression"}
	}
	return FromJSON(m)
}

// FromJSON decodes the generic object form produced by encoding/json or
// yaml.v3. Constants may be strings ("1/3") or numbers.
func FromJSON(data map[string]any) (Expr, error) {
	return FromJSONWithLimit(data, MaxDepth)
}

// FromJSONWithLimit is FromJSON with an explicit depth limit.
func FromJSONWithLimit(data map[string]any, maxDepth int) (Expr, error) {
	return decodeExpr(data, "", 1, maxDepth)
}

func decodeExpr(data map[string]any, path string, depth, maxDepth int) (Expr, error) {
	if depth > maxDepth {
		return nil, &DecodeError{Path: path, Reason: fmt.Sprintf("nesting exceeds %d levels", maxDepth), Err: ErrTooDeep}
	}
	if data == nil {
		return nil, &DecodeError{Path: path, Reason: "expression must be an object"}
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, &DecodeError{Path: path, Reason: "missing 'type' field"}
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, &DecodeError{Path: path, Reason: "field 'type' must be a non-empty string"}
	}
	here := join(path, typ)

	child := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, &DecodeError{Path: here, Reason: fmt.Sprintf("missing %q", field)}
		}
		m, ok := asObject(v)
		if !ok {
			return nil, &DecodeError{Path: here, Reason: fmt.Sprintf("%q must be an object", field)}
		}
		return decodeExpr(m, join(here, field), depth+1, maxDepth)
	}

	switch typ {
	case "var":
		name, ok := data["name"].(string)
		if !ok || name == "" {
			return nil, &DecodeError{Path: here, Reason: "'name' must be a non-empty string"}
		}
		return V(name), nil

	case "const":
		val, err := decodeNum(data["value"])
		if err != nil {
			return nil, &DecodeError{Path: here, Reason: err.Error()}
		}
		return &Const{value: val}, nil

	case "plus", "times":
		left, err := child("left")
		if err != nil {
			return nil, err
		}
		right, err := child("right")
		if err != nil {
			return nil, err
		}
		if typ == "plus" {
			return PlusOf(left, right), nil
		}
		return TimesOf(left, right), nil
	}
	return nil, &DecodeError{Path: path, Reason: fmt.Sprintf("unknown expression type: %s", typ)}
}

func decodeNum(v any) (*Num, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("missing 'value'")
	case string:
		return ParseNum(x)
	case int:
		return N(int64(x)), nil
	case int64:
		return N(x), nil
	case uint64:
		return ParseNum(strconv.FormatUint(x, 10))
	case uint:
		return ParseNum(strconv.FormatUint(uint64(x), 10))
	case float64:
		// Decoders without UseNumber and YAML decimals land here; go through
		// the shortest decimal form so 0.1 stays 1/10.
		return ParseNum(strconv.FormatFloat(x, 'f', -1, 64))
	case json.Number:
		return ParseNum(x.String())
	}
	return nil, fmt.Errorf("'value' must be a number or numeric string")
}

// asObject accepts map[string]any and the map[any]any shapes some YAML
// decoders produce.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}

// ============================================================
// Polynomial JSON
// ============================================================

// TermJSON is the wire form of a monomial.
type TermJSON struct {
	Coefficient string         `json:"coefficient" yaml:"coefficient"`
	Powers      map[string]int `json:"powers"      yaml:"powers"`
	Order       []string       `json:"order,omitempty" yaml:"order,omitempty"`
}

// PolynomialJSON is the wire form of a polynomial.
type PolynomialJSON struct {
	Terms  []TermJSON `json:"terms"  yaml:"terms"`
	String string     `json:"string" yaml:"string"`
	LaTeX  string     `json:"latex,omitempty" yaml:"latex,omitempty"`
}

// MarshalJSON encodes the term list together with its display string.
func (p *Polynomial) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Wire())
}

// Wire returns the serializable form of p.
func (p *Polynomial) Wire() PolynomialJSON {
	out := PolynomialJSON{Terms: make([]TermJSON, len(p.terms)), String: p.String(), LaTeX: p.LaTeX()}
	for i, m := range p.terms {
		out.Terms[i] = TermJSON{Coefficient: m.coefficient.String(), Powers: m.pprod.Map(), Order: m.pprod.Vars()}
	}
	return out
}

// UnmarshalJSON rebuilds a polynomial from its wire form. Terms with equal
// power products are merged as they are read.
func (p *Polynomial) UnmarshalJSON(data []byte) error {
	var w PolynomialJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out := &Polynomial{}
	for i, t := range w.Terms {
		r, ok := new(big.Rat).SetString(t.Coefficient)
		if !ok {
			return fmt.Errorf("terms[%d]: invalid coefficient %q", i, t.Coefficient)
		}
		for v, e := range t.Powers {
			if e < 0 {
				return fmt.Errorf("terms[%d]: negative exponent for %s", i, v)
			}
		}
		out.addMonomial(NewMonomialPowers(&Num{val: r}, t.Powers, t.Order...))
	}
	if len(out.terms) == 0 {
		out = Zero()
	}
	*p = *out
	return nil
}
