package engine

import "testing"

func TestValidators(t *testing.T) {
	cases := []struct {
		name      string
		validator Validator
		value     string
		ok        bool
	}{
		{"email ok", Email(), "ganesh@example.com", true},
		{"email bad", Email(), "ganesh@", false},
		{"phone ok", Phone(), "7483938485", true},
		{"phone dashes", Phone(), "+1 555-010-9999", true},
		{"phone letters", Phone(), "call me", false},
		{"age ok", AgeRange(13, 120), "22", true},
		{"age low", AgeRange(13, 120), "12", false},
		{"age text", AgeRange(13, 120), "twenty", false},
		{"min length", MinLength(3), "ab", false},
		{"pattern", Pattern(`^[A-Z]`, "capitalise"), "Ganesh", true},
	}
	for _, tc := range cases {
		err := tc.validator.Validate(tc.value)
		if (err == nil) != tc.ok {
			t.Fatalf("%s: Validate(%q) error = %v, want ok=%v", tc.name, tc.value, err, tc.ok)
		}
		if tc.validator.Reason() == "" {
			t.Fatalf("%s: empty reason", tc.name)
		}
	}
}
