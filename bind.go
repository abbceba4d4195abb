package shape

import (
	"context"
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// Into parses v against s and decodes the validated value into T. This is the
// type-projection operation: the runtime schema is the source of truth and T
// is the caller's static view of it. Field names match json struct tags.
func Into[T any](ctx context.Context, s *Schema, v any) (T, error) {
	var out T
	parsed, err := s.Parse(ctx, v)
	if err != nil {
		return out, err
	}
	dec, derr := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &out,
		TagName:    "json",
		DecodeHook: mapstructure.DecodeHookFuncType(jsonNumberHook),
	})
	if derr != nil {
		return out, Issues{{Path: "/", Code: CodeParseError, Message: derr.Error(), Cause: derr}}
	}
	if err := dec.Decode(parsed); err != nil {
		return out, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return out, nil
}

// jsonNumberHook converts json.Number values into the numeric kind the target
// field asks for.
func jsonNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	num, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return num.Int64()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseUint(num.String(), 10, 64)
	case reflect.Float32, reflect.Float64:
		return num.Float64()
	case reflect.String:
		return num.String(), nil
	}
	return data, nil
}
