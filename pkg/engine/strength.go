package engine

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Strength is the coarse password quality tier.
type Strength int

const (
	StrengthWeak Strength = iota
	StrengthMedium
	StrengthStrong
)

// MinPasswordLength is the length that earns the length point.
const MinPasswordLength = 8

func (s Strength) String() string {
	switch s {
	case StrengthMedium:
		return "medium"
	case StrengthStrong:
		return "strong"
	default:
		return "weak"
	}
}

// MarshalText encodes the tier as its lowercase name.
func (s Strength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a lowercase tier name.
func (s *Strength) UnmarshalText(text []byte) error {
	switch string(text) {
	case "weak":
		*s = StrengthWeak
	case "medium":
		*s = StrengthMedium
	case "strong":
		*s = StrengthStrong
	default:
		return fmt.Errorf("engine: unknown strength %q", text)
	}
	return nil
}

// PasswordScore awards one point each for: at least MinPasswordLength
// characters, a decimal digit, an uppercase letter, and a character that is
// neither a letter nor a number. Other numeric runes such as '²' or 'Ⅻ' earn
// nothing.
func PasswordScore(password string) int {
	var hasDigit, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			hasSpecial = true
		}
	}

	score := 0
	if utf8.RuneCountInString(password) >= MinPasswordLength {
		score++
	}
	for _, ok := range []bool{hasDigit, hasUpper, hasSpecial} {
		if ok {
			score++
		}
	}
	return score
}

// PasswordStrength maps the score to a tier: 0-2 weak, 3 medium, 4 strong.
func PasswordStrength(password string) Strength {
	switch score := PasswordScore(password); {
	case score >= 4:
		return StrengthStrong
	case score == 3:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}
