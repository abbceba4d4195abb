package shape_test

import (
	"context"
	"testing"

	shape "github.com/shapelib/shape"
)

type signupForm struct {
	Username string   `json:"username"`
	Age      int      `json:"age"`
	Tags     []string `json:"tags"`
}

func TestInto_Struct(t *testing.T) {
	ctx := context.Background()
	s := shape.Object(shape.Fields{
		"username": shape.String(),
		"age":      shape.Number(),
		"tags":     shape.Array(shape.String()).Optional(),
	})

	v, err := shape.ParseFrom(ctx, s, shape.JSONBytes([]byte(`{"username":"Lu","age":17,"tags":["dev"]}`)))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	form, err := shape.Into[signupForm](ctx, s, v)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if form.Username != "Lu" || form.Age != 17 || len(form.Tags) != 1 || form.Tags[0] != "dev" {
		t.Fatalf("unexpected projection: %+v", form)
	}
}

func TestInto_ValidationFailureWins(t *testing.T) {
	ctx := context.Background()
	s := shape.Object(shape.Fields{"username": shape.String()})
	if _, err := shape.Into[signupForm](ctx, s, map[string]any{"username": 1}); err == nil {
		t.Fatalf("expected validation failure before decoding")
	}
}
