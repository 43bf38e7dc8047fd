// Package regform is the top-level entry point: a registration form engine
// with cascading location selects, password strength and a submit gate,
// plus session, HTML and HTTP layers built on it.
package regform

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/server"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/view"
)

// FormState is the set of values entered so far.
type FormState = model.FormState

// FieldName identifies a form field.
type FieldName = model.FieldName

// Result is the validation outcome for a whole form.
type Result = engine.Result

// Strength is the password strength tier.
type Strength = engine.Strength

// Outcome is the result of a submit attempt.
type Outcome = engine.Outcome

// Catalog is the country/state/city hierarchy.
type Catalog = catalog.Catalog

// NewEngine exposes the engine constructor from the top-level module.
func NewEngine(options ...engine.Option) (*engine.Engine, error) {
	return engine.New(options...)
}

// NewSession starts an editing session over e.
func NewSession(e *engine.Engine, options ...session.Option) *session.Session {
	return session.New(e, options...)
}

// NewServer builds the HTTP surface over e.
func NewServer(e *engine.Engine, options ...server.Option) (*server.Server, error) {
	return server.New(e, options...)
}

// LoadCatalogFile reads a locations YAML file.
func LoadCatalogFile(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("regform: open catalog: %w", err)
	}
	defer f.Close()
	c, err := catalog.Load(f)
	if err != nil {
		return nil, fmt.Errorf("regform: %s: %w", path, err)
	}
	return c, nil
}

// Validate is a one-shot validation of state with a default engine.
func Validate(state FormState, options ...engine.Option) (Result, error) {
	e, err := engine.New(options...)
	if err != nil {
		return Result{}, err
	}
	return e.Validate(state), nil
}

// RenderHTML renders the form for state as a fresh session would show it
// after every field was touched.
func RenderHTML(ctx context.Context, state FormState, options ...engine.Option) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := engine.New(options...)
	if err != nil {
		return nil, err
	}
	sess := session.New(e)
	for _, name := range model.Fields() {
		if _, err := sess.Apply(session.Event{Field: name.String(), Value: state.Value(name)}); err != nil {
			return nil, err
		}
	}
	r, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	html, err := r.Render(view.Build(sess.Snapshot()))
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}
