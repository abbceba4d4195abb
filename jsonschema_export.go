package shape

import js "github.com/shapelib/shape/jsonschema"

// JSONSchema projects the schema node into a JSON Schema representation.
// Optional fields are excluded from an object's required list; a top-level
// Optional projects to its inner node because presence is only meaningful
// inside an object.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	switch s.kind {
	case KindString:
		return &js.Schema{Type: "string"}, nil
	case KindNumber:
		return &js.Schema{Type: "number"}, nil
	case KindUnknown:
		return &js.Schema{}, nil
	case KindOptional:
		return s.elem.JSONSchema()
	case KindArray:
		items, err := s.elem.JSONSchema()
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "array", Items: items}, nil
	case KindObject:
		out := &js.Schema{Type: "object", Properties: make(map[string]*js.Schema, len(s.fields))}
		for _, f := range s.fields {
			fs, err := f.schema.JSONSchema()
			if err != nil {
				return nil, err
			}
			out.Properties[f.name] = fs
			if f.schema.kind != KindOptional {
				out.Required = append(out.Required, f.name)
			}
		}
		if s.unknown == UnknownStrict {
			out.AdditionalProperties = false
		}
		return out, nil
	case KindUnion:
		l, err := s.left.JSONSchema()
		if err != nil {
			return nil, err
		}
		r, err := s.right.JSONSchema()
		if err != nil {
			return nil, err
		}
		return &js.Schema{AnyOf: []*js.Schema{l, r}}, nil
	case KindIntersection:
		l, err := s.left.JSONSchema()
		if err != nil {
			return nil, err
		}
		r, err := s.right.JSONSchema()
		if err != nil {
			return nil, err
		}
		return &js.Schema{AllOf: []*js.Schema{l, r}}, nil
	default:
		return &js.Schema{}, nil
	}
}
