package shape

import "context"

// SafeParse parses v against s, returning (nil, false) on validation error.
func SafeParse(ctx context.Context, s *Schema, v any) (any, bool) {
	out, err := s.Parse(ctx, v)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Is reports whether v conforms to the schema s.
func Is(ctx context.Context, s *Schema, v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}

// ---- Parse-time context options ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// This is set by ParseFrom based on ParseOpt and consumed by the parse walk.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
