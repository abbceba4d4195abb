package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	shape "github.com/shapelib/shape"
)

// URLParams validates chi route parameters against an object schema. Route
// parameters arrive as strings, so the schema's fields should be string
// nodes (optionally wrapped in Optional for routes that omit them).
func URLParams(s *shape.Schema) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := map[string]any{}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				for i, k := range rctx.URLParams.Keys {
					if k == "*" {
						continue
					}
					params[k] = rctx.URLParams.Values[i]
				}
			}
			if _, err := s.Parse(r.Context(), params); err != nil {
				writeIssues(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
