package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormState_WithAndValue(t *testing.T) {
	state := Empty()
	for _, name := range Fields() {
		if name == FieldTermsAccepted {
			continue
		}
		var err error
		state, err = state.With(name, "v-"+string(name))
		if err != nil {
			t.Fatalf("with %s: %v", name, err)
		}
	}
	for _, name := range Fields() {
		if name == FieldTermsAccepted {
			continue
		}
		if got := state.Value(name); got != "v-"+string(name) {
			t.Fatalf("value %s: got %q", name, got)
		}
	}

	state, err := state.With(FieldTermsAccepted, "on")
	if err != nil {
		t.Fatalf("terms: %v", err)
	}
	if !state.TermsAccepted || state.Value(FieldTermsAccepted) != "true" {
		t.Fatalf("expected terms accepted, got %+v", state)
	}
}

func TestFormState_WithUnknownField(t *testing.T) {
	if _, err := Empty().With("nickname", "x"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if _, err := Empty().With(FieldTermsAccepted, "maybe"); err == nil {
		t.Fatalf("expected error for malformed boolean")
	}
}

func TestFormState_IsEmptyAndRedacted(t *testing.T) {
	if !Empty().IsEmpty() {
		t.Fatalf("empty state should report empty")
	}
	state := FormState{FirstName: "Ganesh", Password: "StrongPass1!", ConfirmPassword: "StrongPass1!"}
	if state.IsEmpty() {
		t.Fatalf("filled state reported empty")
	}
	want := FormState{FirstName: "Ganesh"}
	if diff := cmp.Diff(want, state.Redacted()); diff != "" {
		t.Fatalf("redacted mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFieldName(t *testing.T) {
	cases := map[string]FieldName{
		"firstName":        FieldFirstName,
		" CONFIRMPASSWORD ": FieldConfirmPassword,
		"terms":            FieldTermsAccepted,
	}
	for raw, want := range cases {
		got, ok := ParseFieldName(raw)
		if !ok || got != want {
			t.Fatalf("ParseFieldName(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := ParseFieldName("nickname"); ok {
		t.Fatalf("expected unknown field to fail")
	}
}

func TestFieldKinds(t *testing.T) {
	want := map[FieldName]FieldKind{
		FieldFirstName:       KindText,
		FieldGender:          KindSelect,
		FieldCity:            KindSelect,
		FieldPassword:        KindSecret,
		FieldConfirmPassword: KindSecret,
		FieldTermsAccepted:   KindCheckbox,
	}
	for name, kind := range want {
		if got := name.Kind(); got != kind {
			t.Fatalf("%s kind = %s, want %s", name, got, kind)
		}
	}
}
