package view

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/session"
)

const (
	TextRequired = "Required"
	TextMismatch = "Passwords do not match"
	TextSuccess  = "Registration Successful"

	groupClass      = "form-group"
	groupErrorClass = "form-group error"
	submitClass     = "submit-btn"
	strengthClass   = "strength-bar"
)

// Group is one labelled form control.
type Group struct {
	Field     string
	Label     string
	Kind      string
	Value     string
	Checked   bool
	Class     string
	GroupID   string
	ErrorID   string
	ErrorText string
	Options   []catalog.Option
}

// View is the fully derived page state.
type View struct {
	SessionID      string
	Groups         []Group
	SubmitClass    string
	SubmitDisabled bool
	StrengthClass  string
	StrengthLabel  string
	StrengthColor  string
	SuccessMessage string
}

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	manifest    *theme.Manifest
	alwaysShow  bool
	placeholder map[model.FieldName]string
}

// WithManifest supplies colour tokens ("strength.weak", "strength.medium",
// "strength.strong") from a go-theme manifest.
func WithManifest(m *theme.Manifest) Option {
	return func(c *buildConfig) {
		c.manifest = m
	}
}

// WithAllErrors shows errors on untouched fields too.
func WithAllErrors() Option {
	return func(c *buildConfig) {
		c.alwaysShow = true
	}
}

var defaultPlaceholders = map[model.FieldName]string{
	model.FieldGender:  "Select Gender",
	model.FieldCountry: "Select Country",
	model.FieldState:   "Select State",
	model.FieldCity:    "Select City",
}

var defaultStrengthColors = map[engine.Strength]string{
	engine.StrengthWeak:   "#ef4444",
	engine.StrengthMedium: "#eab308",
	engine.StrengthStrong: "#22c55e",
}

// Build derives the view for snap. Errors appear on a field once it has been
// touched or after a submit attempt.
func Build(snap session.Snapshot, options ...Option) View {
	cfg := buildConfig{placeholder: defaultPlaceholders}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	v := View{
		SessionID:      snap.ID,
		SubmitClass:    submitClass,
		SubmitDisabled: !snap.Result.CanSubmit,
		StrengthClass:  strengthClass,
	}
	if snap.Result.CanSubmit {
		v.SubmitClass = submitClass + " enabled"
	}
	if snap.HasPassword {
		v.StrengthClass = strengthClass + " strength-" + snap.Strength.String()
		v.StrengthLabel = titleCase(snap.Strength.String())
		v.StrengthColor = strengthColor(cfg.manifest, snap.Strength)
	}
	if snap.Registration != nil {
		v.SuccessMessage = TextSuccess
	}

	for _, name := range model.Fields() {
		g := Group{
			Field:   name.String(),
			Label:   sanitizeLabel(name.Label()),
			Kind:    string(name.Kind()),
			Value:   snap.State.Value(name),
			Class:   groupClass,
			GroupID: name.String() + "Group",
			ErrorID: name.String() + "Error",
		}
		if name == model.FieldTermsAccepted {
			g.Value = ""
			g.Checked = snap.State.TermsAccepted
		}
		if name.Kind() == model.KindSelect {
			g.Options = selectOptions(snap, name, cfg.placeholder[name])
		}

		if cfg.alwaysShow || snap.Attempted || snap.IsTouched(name) {
			g.ErrorText = ErrorText(snap.Result.Field(name))
			if g.ErrorText != "" {
				g.Class = groupErrorClass
			}
		}
		v.Groups = append(v.Groups, g)
	}
	return v
}

// ErrorText maps a field result to the message shown under the control.
func ErrorText(res engine.FieldResult) string {
	switch res.Status {
	case engine.StatusMissing:
		return TextRequired
	case engine.StatusInvalid:
		if res.Reason == engine.ReasonMismatch {
			return TextMismatch
		}
		return titleCase(res.Reason)
	default:
		return ""
	}
}

func selectOptions(snap session.Snapshot, name model.FieldName, placeholder string) []catalog.Option {
	var names []string
	switch name {
	case model.FieldGender:
		names = snap.Genders
	case model.FieldCountry:
		names = snap.Countries
	case model.FieldState:
		names = snap.StateOptions
	case model.FieldCity:
		names = snap.CityOptions
	}
	out := make([]catalog.Option, 0, len(names)+1)
	out = append(out, catalog.Option{Value: "", Label: placeholder})
	for _, n := range names {
		out = append(out, catalog.Option{Value: n, Label: sanitizeLabel(n)})
	}
	return out
}

func strengthColor(m *theme.Manifest, s engine.Strength) string {
	if m != nil {
		if c := strings.TrimSpace(m.Tokens["strength."+s.String()]); c != "" {
			return c
		}
	}
	return defaultStrengthColors[s]
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
