package engine

import "testing"

func TestPasswordStrength_Boundaries(t *testing.T) {
	cases := []struct {
		password string
		score    int
		want     Strength
	}{
		{"", 0, StrengthWeak},
		{"abc", 0, StrengthWeak},
		{"abcdefgh", 1, StrengthWeak},
		{"abcd1234", 2, StrengthWeak},
		{"Abcd1234", 3, StrengthMedium},
		{"Abcd1234!", 4, StrengthStrong},
		{"A1!", 3, StrengthMedium},
		{"StrongPass1!", 4, StrengthStrong},
		{"pass word", 2, StrengthWeak},
		{"abcdefg²", 1, StrengthWeak},
		{"x²", 0, StrengthWeak},
		{"pass٣", 1, StrengthWeak},
	}
	for _, tc := range cases {
		if got := PasswordScore(tc.password); got != tc.score {
			t.Fatalf("PasswordScore(%q) = %d, want %d", tc.password, got, tc.score)
		}
		if got := PasswordStrength(tc.password); got != tc.want {
			t.Fatalf("PasswordStrength(%q) = %s, want %s", tc.password, got, tc.want)
		}
	}
}

func TestStrength_TextRoundTrip(t *testing.T) {
	for _, s := range []Strength{StrengthWeak, StrengthMedium, StrengthStrong} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", s, err)
		}
		var got Strength
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %s: %v", text, err)
		}
		if got != s {
			t.Fatalf("round trip %s -> %s", s, got)
		}
	}
	var s Strength
	if err := s.UnmarshalText([]byte("epic")); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
}
