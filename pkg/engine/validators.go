package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator checks the format of a present (non-blank) value. Presence itself
// is handled by the engine; validators never see blank input.
type Validator interface {
	// Validate returns an error when the value is not acceptable.
	Validate(value string) error

	// Reason is reported as the Invalid reason when Validate fails.
	Reason() string
}

// PatternValidator requires the trimmed value to match a regular expression.
type PatternValidator struct {
	Expr *regexp.Regexp
	Msg  string
}

func (v PatternValidator) Validate(value string) error {
	if v.Expr == nil {
		return nil
	}
	if !v.Expr.MatchString(strings.TrimSpace(value)) {
		return errors.New("pattern mismatch")
	}
	return nil
}

func (v PatternValidator) Reason() string {
	if v.Msg != "" {
		return v.Msg
	}
	return "invalid format"
}

// MinLengthValidator requires at least Min characters.
type MinLengthValidator struct {
	Min int
}

func (v MinLengthValidator) Validate(value string) error {
	if utf8.RuneCountInString(value) < v.Min {
		return fmt.Errorf("too short (min %d)", v.Min)
	}
	return nil
}

func (v MinLengthValidator) Reason() string {
	return fmt.Sprintf("must be at least %d characters", v.Min)
}

// RangeValidator requires an integer within [Min, Max].
type RangeValidator struct {
	Min int
	Max int
}

func (v RangeValidator) Validate(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return errors.New("not a whole number")
	}
	if n < v.Min || n > v.Max {
		return fmt.Errorf("must be between %d and %d", v.Min, v.Max)
	}
	return nil
}

func (v RangeValidator) Reason() string {
	return fmt.Sprintf("must be a number between %d and %d", v.Min, v.Max)
}

// FuncValidator adapts a function into a Validator.
type FuncValidator struct {
	Fn  func(value string) error
	Msg string
}

func (v FuncValidator) Validate(value string) error {
	if v.Fn == nil {
		return nil
	}
	return v.Fn(value)
}

func (v FuncValidator) Reason() string {
	return v.Msg
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Email returns a validator for address shaped values.
func Email() Validator {
	return PatternValidator{Expr: emailRegex, Msg: "invalid email"}
}

// Phone returns a validator for 7 to 15 digits with an optional leading +.
// Spaces and dashes are ignored.
func Phone() Validator {
	return FuncValidator{
		Fn: func(value string) error {
			compact := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(value))
			if !phoneRegex.MatchString(compact) {
				return errors.New("invalid phone")
			}
			return nil
		},
		Msg: "invalid phone",
	}
}

// AgeRange returns a validator for whole-number ages within [min, max].
func AgeRange(lo, hi int) Validator {
	return RangeValidator{Min: lo, Max: hi}
}

// MinLength returns a minimum length validator.
func MinLength(n int) Validator {
	return MinLengthValidator{Min: n}
}

// Pattern returns a validator for the given expression. It panics when expr
// does not compile, like regexp.MustCompile.
func Pattern(expr, reason string) Validator {
	return PatternValidator{Expr: regexp.MustCompile(expr), Msg: reason}
}
