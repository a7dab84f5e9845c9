// Package document loads named expression trees from YAML or JSON files.
//
// A document looks like:
//
//	env:
//	  x: 2
//	  y: "1/3"
//	expressions:
//	  e1: {type: times, left: {type: var, name: x}, right: {type: var, name: y}}
//
// Expressions keep the order in which they appear in the file.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/polynorm"
)

// ErrNotFound is returned by Lookup for unknown expression names.
var ErrNotFound = errors.New("expression not found")

// Entry is one named expression.
type Entry struct {
	Name string
	Expr polynorm.Expr
}

// Document is a parsed expression file.
type Document struct {
	Entries []Entry
	Env     polynorm.Env
}

type rawDocument struct {
	Env         map[string]yaml.Node `yaml:"env"`
	Expressions yaml.Node            `yaml:"expressions"`
}

// Load reads and parses path. maxDepth bounds expression nesting.
func Load(path string, maxDepth int) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(bytes.NewReader(data), maxDepth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a document from r.
func Parse(r io.Reader, maxDepth int) (*Document, error) {
	var raw rawDocument
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	doc := &Document{Env: make(polynorm.Env, len(raw.Env))}
	for name, node := range raw.Env {
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, fmt.Errorf("env.%s: %w", name, err)
		}
		n, err := polynorm.ParseNum(s)
		if err != nil {
			return nil, fmt.Errorf("env.%s: %w", name, err)
		}
		doc.Env[name] = n
	}

	if raw.Expressions.Kind == 0 {
		return nil, errors.New("document has no expressions")
	}
	if raw.Expressions.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expressions must be a mapping of name to tree", raw.Expressions.Line)
	}
	content := raw.Expressions.Content
	seen := make(map[string]bool, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		keyNode, valNode := content[i], content[i+1]
		name := keyNode.Value
		if seen[name] {
			return nil, fmt.Errorf("line %d: duplicate expression %q", keyNode.Line, name)
		}
		seen[name] = true

		var tree map[string]any
		if err := valNode.Decode(&tree); err != nil {
			return nil, fmt.Errorf("expressions.%s: %w", name, err)
		}
		e, err := polynorm.FromJSONWithLimit(tree, maxDepth)
		if err != nil {
			return nil, fmt.Errorf("expressions.%s: %w", name, err)
		}
		doc.Entries = append(doc.Entries, Entry{Name: name, Expr: e})
	}
	return doc, nil
}

// Lookup returns the expression called name.
func (d *Document) Lookup(name string) (polynorm.Expr, error) {
	for _, e := range d.Entries {
		if e.Name == name {
			return e.Expr, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Exprs returns the trees in document order.
func (d *Document) Exprs() []polynorm.Expr {
	out := make([]polynorm.Expr, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Expr
	}
	return out
}
