// Package schemadoc imports declarative schema documents (YAML or JSON) into
// shape schema nodes, so schemas can live next to the data they validate
// instead of in Go code.
//
// Document grammar:
//
//	type: string | number | unknown | array | object | union | intersection
//	optional: true          # wraps the node in an optional layer
//	items: {...}            # array element document
//	fields: {name: {...}}   # object field documents
//	unknown: strict | strip | passthrough
//	anyOf: [{...}, {...}]   # union branches, first entry tried first
//	allOf: [{...}, {...}]   # intersection branches
package schemadoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	shape "github.com/shapelib/shape"
)

// FromYAML decodes the first YAML document in data and imports it.
func FromYAML(data []byte) (*shape.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("schemadoc: empty document")
		}
		return nil, err
	}
	m, ok := node.(map[string]any)
	if !ok {
		return nil, errors.New("schemadoc: document root must be a mapping")
	}
	return Import(m)
}

// FromJSON decodes a JSON schema document and imports it.
func FromJSON(data []byte) (*shape.Schema, error) {
	var m map[string]any
	if err := j.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return Import(m)
}

// Import builds a schema node from a decoded document.
func Import(doc map[string]any) (*shape.Schema, error) {
	t, _ := doc["type"].(string)
	var node *shape.Schema
	switch t {
	case "string":
		node = shape.String()
	case "number":
		node = shape.Number()
	case "unknown":
		node = shape.Unknown()
	case "array":
		items, ok := doc["items"].(map[string]any)
		if !ok {
			return nil, errors.New(`schemadoc: array requires an "items" mapping`)
		}
		inner, err := Import(items)
		if err != nil {
			return nil, err
		}
		node = shape.Array(inner)
	case "object":
		var err error
		if node, err = importObject(doc); err != nil {
			return nil, err
		}
	case "union":
		var err error
		if node, err = importBranches(doc, "anyOf"); err != nil {
			return nil, err
		}
	case "intersection":
		var err error
		if node, err = importBranches(doc, "allOf"); err != nil {
			return nil, err
		}
	case "":
		return nil, errors.New(`schemadoc: missing "type"`)
	default:
		return nil, fmt.Errorf("schemadoc: unsupported type %q", t)
	}
	if optional, _ := doc["optional"].(bool); optional {
		node = node.Optional()
	}
	return node, nil
}

func importObject(doc map[string]any) (*shape.Schema, error) {
	fs := shape.Fields{}
	if raw, ok := doc["fields"]; ok {
		fsRaw, ok := raw.(map[string]any)
		if !ok {
			return nil, errors.New(`schemadoc: "fields" must be a mapping`)
		}
		for name, fv := range fsRaw {
			fm, ok := fv.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("schemadoc: field %q must be a mapping", name)
			}
			inner, err := Import(fm)
			if err != nil {
				return nil, err
			}
			fs[name] = inner
		}
	}
	node := shape.Object(fs)
	policy, _ := doc["unknown"].(string)
	switch policy {
	case "", "passthrough":
	case "strict":
		node = node.Strict()
	case "strip":
		node = node.Strip()
	default:
		return nil, fmt.Errorf("schemadoc: unknown-key policy %q", policy)
	}
	return node, nil
}

// importBranches folds two or more branch documents with Or/And; the fold is
// left-associative so the first branch keeps priority.
func importBranches(doc map[string]any, key string) (*shape.Schema, error) {
	raw, ok := doc[key].([]any)
	if !ok || len(raw) < 2 {
		return nil, fmt.Errorf("schemadoc: %s requires a %q list with at least two entries", doc["type"], key)
	}
	nodes := make([]*shape.Schema, 0, len(raw))
	for i, bv := range raw {
		bm, ok := bv.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemadoc: %s branch %d must be a mapping", key, i)
		}
		n, err := Import(bm)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	out := nodes[0]
	for _, n := range nodes[1:] {
		if key == "anyOf" {
			out = out.Or(n)
		} else {
			out = out.And(n)
		}
	}
	return out, nil
}
