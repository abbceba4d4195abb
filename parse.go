package shape

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/shapelib/shape/i18n"
)

// Parse checks v against the schema node and returns the value on success.
// Successful parses return the original value reference; the walk never
// mutates the node or the input. Failures return Issues and no partial value.
// By default all field/element issues in a container are collected; wrap the
// context with WithFailFast to abort on the first issue.
func (s *Schema) Parse(ctx context.Context, v any) (any, error) {
	if s == nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	return s.parse(ctx, v)
}

func (s *Schema) parse(ctx context.Context, v any) (any, error) {
	switch s.kind {
	case KindString:
		if _, ok := v.(string); !ok {
			return nil, Issues{{Path: "/", Code: CodeInvalidString, Message: i18n.T(CodeInvalidString, nil), Hint: "expected string"}}
		}
		return v, nil
	case KindNumber:
		if !isNumber(v) {
			return nil, Issues{{Path: "/", Code: CodeInvalidNumber, Message: i18n.T(CodeInvalidNumber, nil), Hint: "expected number"}}
		}
		return v, nil
	case KindUnknown:
		return v, nil
	case KindOptional:
		// The absent sentinel short-circuits without consulting the inner node.
		if v == nil {
			return nil, nil
		}
		return s.elem.parse(ctx, v)
	case KindArray:
		return s.parseArray(ctx, v)
	case KindObject:
		return s.parseObject(ctx, v)
	case KindUnion:
		if out, err := s.left.parse(ctx, v); err == nil {
			return out, nil
		}
		// Left takes priority; the fallback's result or failure is surfaced.
		return s.right.parse(ctx, v)
	case KindIntersection:
		if _, err := s.left.parse(ctx, v); err != nil {
			return nil, err
		}
		if _, err := s.right.parse(ctx, v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: "unhandled schema kind"}}
	}
}

// isNumber accepts the numeric representations the sources produce:
// json.Number from the JSON driver, int/float64 from the YAML driver, plus
// the remaining machine widths for values assembled in Go code.
func isNumber(v any) bool {
	switch v.(type) {
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func (s *Schema) parseArray(ctx context.Context, v any) (any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeInvalidArray, Message: i18n.T(CodeInvalidArray, nil), Hint: "expected array"}}
	}
	var iss Issues
	for i, el := range arr {
		if _, err := s.elem.parse(ctx, el); err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+strconv.Itoa(i), err)...)
			if IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return arr, nil
}

func (s *Schema) parseObject(ctx context.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeNotObject, Message: i18n.T(CodeNotObject, nil), Hint: "expected object"}}
	}
	var iss Issues
	for _, f := range s.fields {
		// A missing key surfaces as nil, which Optional fields absorb.
		if _, err := f.schema.parse(ctx, src[f.name]); err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+f.name, err)...)
			if IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	iss = AppendIssues(iss, s.collectUnknown(src)...)
	if len(iss) > 0 {
		return nil, iss
	}
	if s.unknown == UnknownStrip {
		out := make(map[string]any, len(s.fields))
		for _, f := range s.fields {
			if val, exists := src[f.name]; exists {
				out[f.name] = val
			}
		}
		return out, nil
	}
	return src, nil
}

// collectUnknown reports undeclared keys in key-sorted order under
// UnknownStrict. Strip and Passthrough produce no issues here.
func (s *Schema) collectUnknown(src map[string]any) Issues {
	if s.unknown != UnknownStrict {
		return nil
	}
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := s.known[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss Issues
	for _, k := range uks {
		iss = AppendIssues(iss, Issue{
			Path:    "/" + k,
			Code:    CodeUnknownKey,
			Message: i18n.T(CodeUnknownKey, nil),
			Params:  map[string]any{"key": k},
		})
	}
	return iss
}

// rebaseIssues prefixes child issue paths with base ("/name" or "/2") so a
// failure deep in a nested value reports its full location.
func rebaseIssues(base string, err error) Issues {
	child, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
