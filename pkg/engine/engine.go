package engine

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
)

// Engine evaluates registration form rules. It holds only configuration, so a
// single Engine can serve any number of independent FormState values.
type Engine struct {
	catalog       *catalog.Catalog
	validators    map[model.FieldName][]Validator
	genders       []string
	strictOptions bool
}

// New constructs an Engine backed by the embedded catalog unless WithCatalog
// is supplied.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		validators: make(map[model.FieldName][]Validator),
		genders:    append([]string(nil), DefaultGenders...),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	if e.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("engine: load default catalog: %w", err)
		}
		e.catalog = c
	}
	return e, nil
}

// Catalog exposes the location catalog in use.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// SetField returns state with one field updated. Setting country clears state
// and city; setting state clears city. No other field is touched.
func (e *Engine) SetField(state model.FormState, name model.FieldName, value string) (model.FormState, error) {
	if !name.Valid() {
		return state, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	next, err := state.With(name, value)
	if err != nil {
		return state, fmt.Errorf("engine: set %s: %w", name, err)
	}

	switch name {
	case model.FieldCountry:
		next.State = ""
		next.City = ""
	case model.FieldState:
		next.City = ""
	}
	return next, nil
}

// SetTerms returns state with the terms checkbox set.
func (e *Engine) SetTerms(state model.FormState, accepted bool) model.FormState {
	state.TermsAccepted = accepted
	return state
}

// Countries yields the country options.
func (e *Engine) Countries() iter.Seq[string] {
	return e.catalog.Countries()
}

// StateOptions yields the states for country; empty when unset or unknown.
func (e *Engine) StateOptions(country string) iter.Seq[string] {
	return e.catalog.States(country)
}

// CityOptions yields the cities for (country, state); empty when either is
// unset or unknown.
func (e *Engine) CityOptions(country, state string) iter.Seq[string] {
	return e.catalog.Cities(country, state)
}

// Genders returns the gender options.
func (e *Engine) Genders() []string {
	return append([]string(nil), e.genders...)
}

// Validate computes per-field results and the submit gate for state.
func (e *Engine) Validate(state model.FormState) Result {
	res := Result{Fields: make(map[model.FieldName]FieldResult, len(model.Fields()))}

	for _, name := range model.Fields() {
		res.Fields[name] = e.validateField(state, name)
	}

	res.CanSubmit = true
	for _, fr := range res.Fields {
		if !fr.Valid() {
			res.CanSubmit = false
			break
		}
	}
	return res
}

func (e *Engine) validateField(state model.FormState, name model.FieldName) FieldResult {
	if name == model.FieldTermsAccepted {
		if !state.TermsAccepted {
			return missing()
		}
		return valid()
	}

	value := state.Value(name)
	if strings.TrimSpace(value) == "" {
		return missing()
	}

	if name == model.FieldConfirmPassword && value != state.Password {
		return invalid(ReasonMismatch)
	}

	if e.strictOptions && name.Kind() == model.KindSelect && !e.isKnownOption(state, name, value) {
		return invalid(ReasonUnknownOption)
	}

	for _, v := range e.validators[name] {
		if err := v.Validate(value); err != nil {
			return invalid(v.Reason())
		}
	}
	return valid()
}

func (e *Engine) isKnownOption(state model.FormState, name model.FieldName, value string) bool {
	switch name {
	case model.FieldGender:
		return slices.Contains(e.genders, value)
	case model.FieldCountry:
		return e.catalog.HasCountry(value)
	case model.FieldState:
		return e.catalog.HasState(state.Country, value)
	case model.FieldCity:
		return e.catalog.HasCity(state.Country, state.State, value)
	default:
		return true
	}
}
