package shape_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	shape "github.com/shapelib/shape"
)

func TestParseFrom_JSON(t *testing.T) {
	ctx := context.Background()
	s := shape.Object(shape.Fields{
		"username": shape.String(),
		"age":      shape.Number(),
	})

	v, err := shape.ParseFrom(ctx, s, shape.JSONBytes([]byte(`{"username":"Lu","age":17}`)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m := v.(map[string]any)
	// numbers surface as json.Number, not float64
	if n, ok := m["age"].(json.Number); !ok || n.String() != "17" {
		t.Fatalf("expected json.Number age, got %T %v", m["age"], m["age"])
	}

	_, err = shape.ParseFrom(ctx, s, shape.JSONBytes([]byte(`{"username":123,"age":17}`)))
	iss, ok := shape.AsIssues(err)
	if !ok || iss[0].Path != "/username" || iss[0].Code != shape.CodeInvalidString {
		t.Fatalf("expected invalid_string at /username, got %v", err)
	}

	if _, err := shape.ParseFrom(ctx, s, shape.JSONBytes([]byte(`{"broken`))); err == nil {
		t.Fatalf("expected parse_error for malformed JSON")
	}
}

func TestParseFrom_YAML(t *testing.T) {
	ctx := context.Background()
	s := shape.Object(shape.Fields{
		"name": shape.String(),
		"age":  shape.Number(),
		"tags": shape.Array(shape.String()),
	})

	doc := "name: Lu\nage: 17\ntags:\n  - dev\n  - ops\n"
	v, err := shape.ParseFrom(ctx, s, shape.YAMLBytes([]byte(doc)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m := v.(map[string]any)
	if m["name"] != "Lu" {
		t.Fatalf("unexpected value: %#v", m)
	}

	if _, err := shape.ParseFrom(ctx, s, shape.YAMLReader(strings.NewReader("name: 1\nage: x\n"))); err == nil {
		t.Fatalf("expected issues for mistyped YAML fields")
	}
}

func TestParseFrom_MaxBytes(t *testing.T) {
	ctx := context.Background()
	s := shape.Object(shape.Fields{"username": shape.String()})
	body := []byte(`{"username":"Lu"}`)

	if _, err := shape.ParseFrom(ctx, s, shape.JSONBytes(body), shape.ParseOpt{MaxBytes: 1024}); err != nil {
		t.Fatalf("unexpected err under generous cap: %v", err)
	}

	_, err := shape.ParseFrom(ctx, s, shape.JSONBytes(body), shape.ParseOpt{MaxBytes: 4})
	iss, ok := shape.AsIssues(err)
	if !ok || iss[0].Code != shape.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestParseFrom_FailFast(t *testing.T) {
	ctx := context.Background()
	s := shape.Object(shape.Fields{
		"a": shape.String(),
		"b": shape.Number(),
	})
	body := []byte(`{"a":1,"b":"x"}`)

	_, err := shape.ParseFrom(ctx, s, shape.JSONBytes(body))
	if iss, _ := shape.AsIssues(err); len(iss) != 2 {
		t.Fatalf("expected collected issues, got %v", err)
	}

	_, err = shape.ParseFrom(ctx, s, shape.JSONBytes(body), shape.ParseOpt{FailFast: true})
	if iss, _ := shape.AsIssues(err); len(iss) != 1 {
		t.Fatalf("expected single issue under FailFast, got %v", err)
	}
}

func TestSourceNames(t *testing.T) {
	if shape.JSONBytes(nil).Name() != "json" {
		t.Fatalf("json source misnamed")
	}
	if shape.YAMLBytes(nil).Name() != "yaml" {
		t.Fatalf("yaml source misnamed")
	}
}
