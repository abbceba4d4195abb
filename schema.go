package shape

import "sort"

// Kind enumerates the closed set of schema variants. Adding a new primitive
// means adding a Kind and a case in the parse dispatch; there is no external
// extension mechanism.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindUnknown
	KindOptional
	KindArray
	KindObject
	KindUnion
	KindIntersection
)

// Fields maps object field names to their schema nodes.
type Fields map[string]*Schema

type field struct {
	name   string
	schema *Schema
}

// Schema is an immutable description of an expected value shape. A node is
// constructed once and reused across many Parse calls; builders return new
// nodes and never mutate the receiver.
type Schema struct {
	kind Kind

	elem *Schema // Optional / Array inner node.

	fields  []field            // Object fields in ascending name order.
	known   map[string]*Schema // Object field lookup.
	unknown UnknownPolicy      // Object handling of undeclared keys.

	left  *Schema // Union / Intersection branches; left is tried first.
	right *Schema
}

// Kind reports the variant of the node.
func (s *Schema) Kind() Kind { return s.kind }

// String returns a schema node matching text values.
func String() *Schema { return &Schema{kind: KindString} }

// Number returns a schema node matching numeric values.
func Number() *Schema { return &Schema{kind: KindNumber} }

// Unknown returns a schema node matching any value.
func Unknown() *Schema { return &Schema{kind: KindUnknown} }

// Array returns a schema node matching sequences whose elements conform to
// elem.
func Array(elem *Schema) *Schema { return &Schema{kind: KindArray, elem: elem} }

// Object returns a schema node matching records with the given fields.
// Undeclared keys pass through by default; see Strict and Strip. Field names
// are iterated in ascending order for deterministic error reporting.
func Object(fs Fields) *Schema {
	names := make([]string, 0, len(fs))
	for name := range fs {
		names = append(names, name)
	}
	sort.Strings(names)
	ordered := make([]field, 0, len(fs))
	known := make(map[string]*Schema, len(fs))
	for _, name := range names {
		ordered = append(ordered, field{name: name, schema: fs[name]})
		known[name] = fs[name]
	}
	return &Schema{kind: KindObject, fields: ordered, known: known}
}

// Optional wraps the node so that an absent value (nil) is accepted without
// consulting the inner schema.
func (s *Schema) Optional() *Schema { return &Schema{kind: KindOptional, elem: s} }

// Or wraps the node and other in a union; the receiver is tried first and
// other is the fallback.
func (s *Schema) Or(other *Schema) *Schema {
	return &Schema{kind: KindUnion, left: s, right: other}
}

// And wraps the node and other in an intersection; a value must parse against
// both, receiver first.
func (s *Schema) And(other *Schema) *Schema {
	return &Schema{kind: KindIntersection, left: s, right: other}
}

// Strict returns a copy of an object schema that rejects undeclared keys.
// Non-object receivers are returned unchanged.
func (s *Schema) Strict() *Schema { return s.withUnknown(UnknownStrict) }

// Strip returns a copy of an object schema whose result drops undeclared
// keys. This is the one case where Parse returns a rebuilt map instead of the
// input reference. Non-object receivers are returned unchanged.
func (s *Schema) Strip() *Schema { return s.withUnknown(UnknownStrip) }

func (s *Schema) withUnknown(p UnknownPolicy) *Schema {
	if s.kind != KindObject {
		return s
	}
	c := *s
	c.unknown = p
	return &c
}
