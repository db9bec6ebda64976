// Package experience defines the closed set of experience categories
package experience

// Categories in ascending seniority order
var Categories = []string{
	"under 1 year",
	"1-3 years",
	"3-5 years",
	"5-10 years",
	"above 10 years",
}

var set = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// Valid reports whether s is a known category
func Valid(s string) bool {
	_, ok := set[s]
	return ok
}
