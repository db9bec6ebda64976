package modkit_test

import (
	"net/http"
	"testing"

	"paylens/internal/modkit"
)

func TestBuildDefaults(t *testing.T) {
	b := modkit.Build()
	if b.Subrouter == nil || b.Register == nil {
		t.Fatal("expected default hooks to be non-nil")
	}
	if b.Name != "" || b.Prefix != "" || len(b.Mw) != 0 {
		t.Fatalf("unexpected non-zero fields: %+v", b)
	}
}

func TestBuildAppliesOptions(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	b := modkit.Build(
		modkit.WithName("dashboard"),
		modkit.WithPrefix("/dashboard"),
		modkit.WithMiddlewares(mw),
		modkit.WithSwagger(true),
		modkit.WithPorts(42),
	)
	if b.Name != "dashboard" {
		t.Fatalf("name = %q", b.Name)
	}
	if b.Prefix != "/dashboard" {
		t.Fatalf("prefix = %q", b.Prefix)
	}
	if len(b.Mw) != 1 {
		t.Fatalf("mw len = %d", len(b.Mw))
	}
	if !b.SwaggerOn {
		t.Fatal("swagger should be on")
	}
	if n, ok := b.Ports.(int); !ok || n != 42 {
		t.Fatalf("ports = %v", b.Ports)
	}
}
