package model

import "strings"

// FieldName identifies one of the registration form fields.
type FieldName string

const (
	FieldFirstName       FieldName = "firstName"
	FieldLastName        FieldName = "lastName"
	FieldEmail           FieldName = "email"
	FieldPhone           FieldName = "phone"
	FieldAge             FieldName = "age"
	FieldGender          FieldName = "gender"
	FieldAddress         FieldName = "address"
	FieldCountry         FieldName = "country"
	FieldState           FieldName = "state"
	FieldCity            FieldName = "city"
	FieldPassword        FieldName = "password"
	FieldConfirmPassword FieldName = "confirmPassword"
	FieldTermsAccepted   FieldName = "termsAccepted"
)

// FieldKind groups fields by the input widget that collects them.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindSecret   FieldKind = "secret"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
)

var fieldOrder = []FieldName{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldAge,
	FieldGender,
	FieldAddress,
	FieldCountry,
	FieldState,
	FieldCity,
	FieldPassword,
	FieldConfirmPassword,
	FieldTermsAccepted,
}

var fieldLabels = map[FieldName]string{
	FieldFirstName:       "First Name",
	FieldLastName:        "Last Name",
	FieldEmail:           "Email",
	FieldPhone:           "Phone",
	FieldAge:             "Age",
	FieldGender:          "Gender",
	FieldAddress:         "Address",
	FieldCountry:         "Country",
	FieldState:           "State",
	FieldCity:            "City",
	FieldPassword:        "Password",
	FieldConfirmPassword: "Confirm Password",
	FieldTermsAccepted:   "I accept the terms and conditions",
}

// Fields returns every field in form order.
func Fields() []FieldName {
	return append([]FieldName(nil), fieldOrder...)
}

// ParseFieldName resolves a raw name (case-insensitive) into a FieldName.
func ParseFieldName(raw string) (FieldName, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, name := range fieldOrder {
		if strings.EqualFold(string(name), trimmed) {
			return name, true
		}
	}
	// the reference page uses "terms" as the checkbox id
	if strings.EqualFold(trimmed, "terms") {
		return FieldTermsAccepted, true
	}
	return "", false
}

// Valid reports whether the name is one of the known fields.
func (f FieldName) Valid() bool {
	_, ok := fieldLabels[f]
	return ok
}

// Label returns the human readable label for the field.
func (f FieldName) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// Kind reports which widget collects the field.
func (f FieldName) Kind() FieldKind {
	switch f {
	case FieldGender, FieldCountry, FieldState, FieldCity:
		return KindSelect
	case FieldPassword, FieldConfirmPassword:
		return KindSecret
	case FieldTermsAccepted:
		return KindCheckbox
	default:
		return KindText
	}
}

func (f FieldName) String() string {
	return string(f)
}
