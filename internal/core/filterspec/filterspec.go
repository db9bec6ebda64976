// Package filterspec normalizes categorical filter selections into a safe
// predicate and a canonical cache key fragment
package filterspec

import (
	"fmt"
	"sort"
	"strings"

	pstrings "paylens/internal/platform/strings"
)

// Attr is an allow-listed filter attribute
// anything outside this closed set never reaches the query layer
type Attr string

const (
	AttrCity       Attr = "city"
	AttrIndustry   Attr = "industry"
	AttrOccupation Attr = "occupation"
	AttrMajor      Attr = "major"
	AttrUniversity Attr = "university"
	AttrExperience Attr = "experience_category"
)

// All lists attributes in predicate order
var All = []Attr{
	AttrCity,
	AttrIndustry,
	AttrOccupation,
	AttrMajor,
	AttrUniversity,
	AttrExperience,
}

// columns maps logical attributes to physical columns on the aliased table
var columns = map[Attr]string{
	AttrCity:       "r.city",
	AttrIndustry:   "r.industry",
	AttrOccupation: "r.occupation",
	AttrMajor:      "r.major",
	AttrUniversity: "r.university",
	AttrExperience: "r.experience_category",
}

// Column returns the physical column for a
func (a Attr) Column() string { return columns[a] }

// String returns the logical name
func (a Attr) String() string { return string(a) }

// Parse returns the Attr for a logical name, ok=false for anything off the allow-list
func Parse(s string) (Attr, bool) {
	a := Attr(s)
	_, ok := columns[a]
	return a, ok
}

// Spec is an immutable normalized filter selection
// zero value means "all records"
type Spec struct {
	// sel holds trimmed non-empty values per attribute, duplicates preserved
	sel map[Attr][]string
}

// Build normalizes raw multi-valued params into a Spec
// unknown keys are dropped, values are trimmed, blanks removed, duplicates kept
func Build(params map[string][]string) Spec {
	sel := make(map[Attr][]string, len(All))
	for _, a := range All {
		vals := pstrings.CleanList(params[string(a)])
		if len(vals) > 0 {
			sel[a] = vals
		}
	}
	return Spec{sel: sel}
}

// Empty reports whether no attribute carries a selection
func (s Spec) Empty() bool { return len(s.sel) == 0 }

// Values returns the selected values for a, nil when unset
func (s Spec) Values(a Attr) []string {
	vals := s.sel[a]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Key derives the canonical cache key fragment.
// Attributes sort lexicographically, values are deduplicated and sorted,
// so any two selections with the same content yield byte-identical keys.
// An empty selection yields the sentinel "all"
func (s Spec) Key() string {
	if len(s.sel) == 0 {
		return "all"
	}
	attrs := make([]string, 0, len(s.sel))
	for a := range s.sel {
		attrs = append(attrs, string(a))
	}
	sort.Strings(attrs)

	parts := make([]string, 0, len(attrs))
	for _, name := range attrs {
		vals := dedupSorted(s.sel[Attr(name)])
		parts = append(parts, name+"="+strings.Join(vals, "|"))
	}
	return strings.Join(parts, "&")
}

func dedupSorted(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Where builds the conjunctive predicate with placeholders starting at $1
func (s Spec) Where() (string, []any) {
	return s.WhereFrom(1)
}

// WhereFrom builds the predicate with placeholders starting at $start,
// for statements that bind their own arguments ahead of the filter values.
// The soft-delete exclusion is always present
func (s Spec) WhereFrom(start int) (string, []any) {
	clauses := []string{"r.deleted_at IS NULL"}
	args := make([]any, 0, len(s.sel))
	n := start
	for _, a := range All {
		vals := s.sel[a]
		if len(vals) == 0 {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", a.Column(), n))
		args = append(args, vals)
		n++
	}
	return strings.Join(clauses, " AND "), args
}
