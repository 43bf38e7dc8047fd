package engine

import (
	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
)

// DefaultGenders are the gender options offered by the reference form.
var DefaultGenders = []string{"Male", "Female", "Other"}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog overrides the embedded location catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithValidators appends format validators for a field. They run only when
// the field is present.
func WithValidators(field model.FieldName, validators ...Validator) Option {
	return func(e *Engine) {
		for _, v := range validators {
			if v == nil {
				continue
			}
			e.validators[field] = append(e.validators[field], v)
		}
	}
}

// WithStrictFormats enables the email, phone and age (13-120) validators.
func WithStrictFormats() Option {
	return func(e *Engine) {
		WithValidators(model.FieldEmail, Email())(e)
		WithValidators(model.FieldPhone, Phone())(e)
		WithValidators(model.FieldAge, AgeRange(13, 120))(e)
	}
}

// WithStrictOptions makes select values outside the current option lists
// Invalid(ReasonUnknownOption) instead of Valid.
func WithStrictOptions(strict bool) Option {
	return func(e *Engine) {
		e.strictOptions = strict
	}
}

// WithGenders replaces the gender option list.
func WithGenders(genders ...string) Option {
	return func(e *Engine) {
		if len(genders) > 0 {
			e.genders = append([]string(nil), genders...)
		}
	}
}
