package experience_test

import (
	"testing"

	"paylens/internal/core/experience"
)

func TestValid(t *testing.T) {
	for _, c := range experience.Categories {
		if !experience.Valid(c) {
			t.Errorf("category %q should be valid", c)
		}
	}
	for _, bad := range []string{"", "1-3", "10+ years", "Under 1 Year"} {
		if experience.Valid(bad) {
			t.Errorf("%q should not be valid", bad)
		}
	}
}
