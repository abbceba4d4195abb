// Package middleware provides net/http helpers that validate requests
// against shape schemas before handlers run.
package middleware

import (
	"context"
	"net/http"

	j "github.com/goccy/go-json"

	shape "github.com/shapelib/shape"
)

// ctxKeyValidated is a typed context key for storing the validated body.
type ctxKeyValidated struct{}

// ContextWithValidated attaches a validated value to the context.
func ContextWithValidated(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValidated{}, v)
}

// ValidatedFromContext retrieves the validated value from context.
func ValidatedFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyValidated{})
	return v, v != nil
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []shape.Issue) map[string]any {
	return map[string]any{"issues": issues}
}

// ValidateJSON parses the incoming JSON body using schema s with opt, stores
// the validated value in the request context, and on validation failure
// answers 400 with an Issues payload.
func ValidateJSON(s *shape.Schema, opt shape.ParseOpt) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := shape.ParseFrom(r.Context(), s, shape.JSONReader(r.Body), opt)
			if err != nil {
				writeIssues(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithValidated(r.Context(), v)))
		})
	}
}

func writeIssues(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if iss, ok := shape.AsIssues(err); ok {
		_ = j.NewEncoder(w).Encode(ErrorPayload(iss))
		return
	}
	_ = j.NewEncoder(w).Encode(map[string]any{"error": err.Error()})
}
