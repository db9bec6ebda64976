package filterspec_test

import (
	"testing"

	"paylens/internal/core/filterspec"
)

func TestKeyDeterminism(t *testing.T) {
	a := filterspec.Build(map[string][]string{
		"city":     {"Berlin", "Paris"},
		"industry": {},
	})
	b := filterspec.Build(map[string][]string{
		"industry": {},
		"city":     {"Paris", "Berlin"},
	})

	if a.Key() != b.Key() {
		t.Fatalf("keys differ: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() != "city=Berlin|Paris" {
		t.Fatalf("key = %q", a.Key())
	}
}

func TestKeyNormalizesWhitespaceAndDuplicates(t *testing.T) {
	a := filterspec.Build(map[string][]string{
		"city": {" Berlin ", "Paris", "Berlin", ""},
	})
	b := filterspec.Build(map[string][]string{
		"city": {"Paris", "Berlin"},
	})
	if a.Key() != b.Key() {
		t.Fatalf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestKeyEmptyIsAll(t *testing.T) {
	s := filterspec.Build(nil)
	if s.Key() != "all" {
		t.Fatalf("key = %q want all", s.Key())
	}
	if !s.Empty() {
		t.Fatal("expected empty spec")
	}
}

func TestKeyMultipleAttrsSorted(t *testing.T) {
	s := filterspec.Build(map[string][]string{
		"industry": {"Tech"},
		"city":     {"Berlin"},
	})
	if s.Key() != "city=Berlin&industry=Tech" {
		t.Fatalf("key = %q", s.Key())
	}
}

func TestUnknownAttrsIgnored(t *testing.T) {
	s := filterspec.Build(map[string][]string{
		"city":               {"Berlin"},
		"salary_eur":         {"1; DROP TABLE salary_records"},
		"deleted_at IS NULL": {"x"},
	})
	if s.Key() != "city=Berlin" {
		t.Fatalf("key = %q", s.Key())
	}
	where, args := s.Where()
	if where != "r.deleted_at IS NULL AND r.city = ANY($1)" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v", args)
	}
}

func TestWherePreservesDuplicatesAndOrder(t *testing.T) {
	s := filterspec.Build(map[string][]string{
		"city": {"Paris", "Berlin", "Paris"},
	})
	_, args := s.Where()
	vals, ok := args[0].([]string)
	if !ok {
		t.Fatalf("arg type %T", args[0])
	}
	if len(vals) != 3 || vals[0] != "Paris" || vals[1] != "Berlin" || vals[2] != "Paris" {
		t.Fatalf("vals = %v", vals)
	}
}

func TestWhereEmptySpec(t *testing.T) {
	s := filterspec.Build(nil)
	where, args := s.Where()
	if where != "r.deleted_at IS NULL" {
		t.Fatalf("where = %q", where)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestWhereFromOffsetsPlaceholders(t *testing.T) {
	s := filterspec.Build(map[string][]string{
		"city":     {"Berlin"},
		"industry": {"Tech"},
	})
	where, args := s.WhereFrom(4)
	want := "r.deleted_at IS NULL AND r.city = ANY($4) AND r.industry = ANY($5)"
	if where != want {
		t.Fatalf("where = %q want %q", where, want)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v", args)
	}
}

func TestParse(t *testing.T) {
	if _, ok := filterspec.Parse("city"); !ok {
		t.Fatal("city should parse")
	}
	if _, ok := filterspec.Parse("salary_eur"); ok {
		t.Fatal("salary_eur must not parse")
	}
}
