package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FormState holds the current value of every registration field. All fields
// except TermsAccepted are strings and may be empty.
type FormState struct {
	FirstName       string `json:"firstName" yaml:"firstName" msgpack:"firstName"`
	LastName        string `json:"lastName" yaml:"lastName" msgpack:"lastName"`
	Email           string `json:"email" yaml:"email" msgpack:"email"`
	Phone           string `json:"phone" yaml:"phone" msgpack:"phone"`
	Age             string `json:"age" yaml:"age" msgpack:"age"`
	Gender          string `json:"gender" yaml:"gender" msgpack:"gender"`
	Address         string `json:"address" yaml:"address" msgpack:"address"`
	Country         string `json:"country" yaml:"country" msgpack:"country"`
	State           string `json:"state" yaml:"state" msgpack:"state"`
	City            string `json:"city" yaml:"city" msgpack:"city"`
	Password        string `json:"password" yaml:"password" msgpack:"password"`
	ConfirmPassword string `json:"confirmPassword" yaml:"confirmPassword" msgpack:"confirmPassword"`
	TermsAccepted   bool   `json:"termsAccepted" yaml:"termsAccepted" msgpack:"termsAccepted"`
}

// Empty returns a state with every field unset.
func Empty() FormState {
	return FormState{}
}

// IsEmpty reports whether no field carries a value.
func (s FormState) IsEmpty() bool {
	return s == FormState{}
}

// Value returns the string form of a field. TermsAccepted renders as
// "true"/"false"; unknown fields return "".
func (s FormState) Value(name FieldName) string {
	if name == FieldTermsAccepted {
		return strconv.FormatBool(s.TermsAccepted)
	}
	if ptr := s.stringField(name); ptr != nil {
		return *ptr
	}
	return ""
}

// With returns a copy of the state with a single field replaced. It performs no
// cascade; that rule belongs to the engine.
func (s FormState) With(name FieldName, value string) (FormState, error) {
	if name == FieldTermsAccepted {
		accepted, err := ParseBool(value)
		if err != nil {
			return s, err
		}
		s.TermsAccepted = accepted
		return s, nil
	}
	ptr := s.stringField(name)
	if ptr == nil {
		return s, fmt.Errorf("model: unknown field %q", name)
	}
	*ptr = value
	return s, nil
}

// Redacted returns a copy with both password fields cleared.
func (s FormState) Redacted() FormState {
	s.Password = ""
	s.ConfirmPassword = ""
	return s
}

// ParseBool accepts the checkbox encodings a UI layer may send.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "off", "no", "n":
		return false, nil
	case "1", "true", "on", "yes", "y", "checked":
		return true, nil
	default:
		return false, fmt.Errorf("model: invalid boolean %q", raw)
	}
}

func (s *FormState) stringField(name FieldName) *string {
	switch name {
	case FieldFirstName:
		return &s.FirstName
	case FieldLastName:
		return &s.LastName
	case FieldEmail:
		return &s.Email
	case FieldPhone:
		return &s.Phone
	case FieldAge:
		return &s.Age
	case FieldGender:
		return &s.Gender
	case FieldAddress:
		return &s.Address
	case FieldCountry:
		return &s.Country
	case FieldState:
		return &s.State
	case FieldCity:
		return &s.City
	case FieldPassword:
		return &s.Password
	case FieldConfirmPassword:
		return &s.ConfirmPassword
	default:
		return nil
	}
}
