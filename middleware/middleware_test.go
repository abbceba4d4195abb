package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	j "github.com/goccy/go-json"

	shape "github.com/shapelib/shape"
	mw "github.com/shapelib/shape/middleware"
)

func newSignupRouter() http.Handler {
	signup := shape.Object(shape.Fields{
		"username": shape.String(),
		"age":      shape.Number().Optional(),
	}).Strict()

	r := chi.NewRouter()
	r.With(mw.ValidateJSON(signup, shape.ParseOpt{})).Post("/signup", func(w http.ResponseWriter, r *http.Request) {
		v, ok := mw.ValidatedFromContext(r.Context())
		if !ok {
			http.Error(w, "missing validated body", http.StatusInternalServerError)
			return
		}
		body := v.(map[string]any)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(body["username"].(string)))
	})
	return r
}

func TestValidateJSON_OK(t *testing.T) {
	srv := httptest.NewServer(newSignupRouter())
	defer srv.Close()

	res, err := http.Post(srv.URL+"/signup", "application/json", strings.NewReader(`{"username":"Lu","age":17}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
}

func TestValidateJSON_Invalid(t *testing.T) {
	srv := httptest.NewServer(newSignupRouter())
	defer srv.Close()

	res, err := http.Post(srv.URL+"/signup", "application/json", strings.NewReader(`{"username":1,"extra":true}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	var payload struct {
		Issues []shape.Issue `json:"issues"`
	}
	if err := j.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Issues) != 2 {
		t.Fatalf("expected two issues, got %+v", payload.Issues)
	}
}

func TestValidateJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(newSignupRouter())
	defer srv.Close()

	res, err := http.Post(srv.URL+"/signup", "application/json", strings.NewReader(`{"broken`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", res.StatusCode)
	}
}

func TestURLParams(t *testing.T) {
	params := shape.Object(shape.Fields{"id": shape.String()})

	r := chi.NewRouter()
	r.With(mw.URLParams(params)).Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(r, "id")))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/users/u1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestValidatedFromContext_Empty(t *testing.T) {
	if _, ok := mw.ValidatedFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ok {
		t.Fatalf("expected no validated value on a fresh context")
	}
}
