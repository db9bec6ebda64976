package module

import "testing"

type portSet struct {
	Name string
	ID   int
}

func TestRegistryRegisterAndPortsAs(t *testing.T) {
	Reset()

	want := portSet{Name: "audit", ID: 1}
	Register("audit", want)

	got, ok := PortsAs[portSet]("audit")
	if !ok {
		t.Fatal("expected ok for existing name")
	}
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestRegistryMissingAndMismatch(t *testing.T) {
	Reset()

	if _, ok := PortsAs[portSet]("missing"); ok {
		t.Fatal("expected ok=false for missing name")
	}

	Register("audit", portSet{Name: "audit", ID: 2})
	if _, ok := PortsAs[int]("audit"); ok {
		t.Fatal("expected ok=false for type mismatch")
	}
}

func TestRegistryReset(t *testing.T) {
	Reset()
	Register("x", portSet{Name: "x", ID: 9})
	Reset()
	if _, ok := PortsAs[portSet]("x"); ok {
		t.Fatal("expected ok=false after reset")
	}
}
