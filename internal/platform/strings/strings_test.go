package strings

import (
	"testing"

	kit "paylens/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"a"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "a" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	in := []string{"x", "y"}
	if got := IfEmpty(in, def); len(got) != 2 {
		t.Fatalf("IfEmpty(in) = %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("name", "field"); got != "name" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { MustString("   ", "field") })
}

func TestMustPrefix(t *testing.T) {
	if got := MustPrefix(" dashboard/ "); got != "/dashboard" {
		t.Fatalf("MustPrefix = %q", got)
	}
	if got := MustPrefix("/records"); got != "/records" {
		t.Fatalf("MustPrefix = %q", got)
	}
	kit.MustPanic(t, func() { MustPrefix("  / ") })
}

func TestCleanList(t *testing.T) {
	in := []string{" Berlin ", "", "  ", "Paris", "Berlin"}
	got := CleanList(in)
	want := []string{"Berlin", "Paris", "Berlin"}
	if len(got) != len(want) {
		t.Fatalf("CleanList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CleanList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
