// Package tui collects a registration interactively in the terminal.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/view"
)

// Prompter walks the registration fields with a PromptDriver, feeding each
// answer into a session so dependent options and validation stay current.
type Prompter struct {
	engine         *engine.Engine
	driver         PromptDriver
	outputFormat   OutputFormat
	theme          Theme
	maxRounds      int
	sessionOptions []session.Option
	logger         *zap.Logger
}

// Result is the outcome of a completed prompt flow.
type Result struct {
	Registration session.Registration
	Rounds       int
	Output       []byte
}

// New constructs a Prompter. Without WithPromptDriver it uses survey on the
// process terminal.
func New(e *engine.Engine, options ...Option) (*Prompter, error) {
	if e == nil {
		return nil, fmt.Errorf("tui: engine is nil")
	}
	p := &Prompter{
		engine:       e,
		outputFormat: OutputFormatPrettyText,
		maxRounds:    DefaultMaxRounds,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(os.Stdout)
	}
	switch p.outputFormat {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", p.outputFormat)
	}
	return p, nil
}

// Run asks every field, submits, and re-asks only the blocking fields until
// the registration is accepted or the round limit is reached.
func (p *Prompter) Run(ctx context.Context) (Result, error) {
	sess := session.New(p.engine, append([]session.Option{session.WithLogger(p.logger)}, p.sessionOptions...)...)
	snap := sess.Snapshot()

	for round := 1; round <= p.maxRounds; round++ {
		for _, name := range model.Fields() {
			if round > 1 && snap.Result.Field(name).Valid() {
				continue
			}
			next, err := p.askField(ctx, sess, snap, name)
			if err != nil {
				return Result{}, err
			}
			snap = next
		}

		outcome, after, err := sess.Submit(ctx)
		if err != nil {
			return Result{}, err
		}
		if outcome.Accepted() && after.Registration != nil {
			if err := p.info(ctx, view.TextSuccess); err != nil {
				return Result{}, err
			}
			out, err := p.encode(*after.Registration)
			if err != nil {
				return Result{}, err
			}
			return Result{Registration: *after.Registration, Rounds: round, Output: out}, nil
		}

		snap = after
		blocking := outcome.Result.Blocking()
		p.logger.Debug("prompt round rejected", zap.Int("round", round), zap.Stringers("fields", blocking))
		labels := make([]string, 0, len(blocking))
		for _, name := range blocking {
			labels = append(labels, name.Label())
		}
		if err := p.warn(ctx, "Please fix: "+strings.Join(labels, ", ")); err != nil {
			return Result{}, err
		}
	}
	return Result{}, fmt.Errorf("%w after %d rounds", ErrRejected, p.maxRounds)
}

func (p *Prompter) askField(ctx context.Context, sess *session.Session, snap session.Snapshot, name model.FieldName) (session.Snapshot, error) {
	label := name.Label()
	current := snap.State.Value(name)

	var value string
	switch name.Kind() {
	case model.KindSecret:
		v, err := p.driver.Password(ctx, InputConfig{Message: label})
		if err != nil {
			return snap, err
		}
		value = v
	case model.KindCheckbox:
		ok, err := p.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: snap.State.TermsAccepted})
		if err != nil {
			return snap, err
		}
		value = strconv.FormatBool(ok)
	case model.KindSelect:
		options := selectOptions(snap, name)
		if len(options) == 0 {
			if err := p.info(ctx, "No "+strings.ToLower(label)+" options available"); err != nil {
				return snap, err
			}
			break
		}
		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, current),
		})
		if err != nil {
			return snap, err
		}
		if idx >= 0 && idx < len(options) {
			value = options[idx]
		}
	default:
		var err error
		if name == model.FieldAddress {
			value, err = p.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current})
		} else {
			value, err = p.driver.Input(ctx, InputConfig{Message: label, Default: current})
		}
		if err != nil {
			return snap, err
		}
	}

	next, err := sess.Apply(session.Event{Field: name.String(), Value: value})
	if err != nil {
		return snap, err
	}

	if name == model.FieldPassword && next.HasPassword {
		if err := p.info(ctx, "Password strength: "+view.Build(next).StrengthLabel); err != nil {
			return next, err
		}
	}
	if msg := view.ErrorText(next.Result.Field(name)); msg != "" {
		if err := p.warn(ctx, label+": "+msg); err != nil {
			return next, err
		}
	}
	return next, nil
}

func (p *Prompter) info(ctx context.Context, msg string) error {
	return p.driver.Info(ctx, p.theme.InfoPrefix+msg)
}

func (p *Prompter) warn(ctx context.Context, msg string) error {
	return p.driver.Info(ctx, p.theme.ErrorPrefix+msg)
}

func (p *Prompter) encode(reg session.Registration) ([]byte, error) {
	switch p.outputFormat {
	case OutputFormatJSON:
		return json.MarshalIndent(reg, "", "  ")
	case OutputFormatYAML:
		return yaml.Marshal(reg)
	default:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "Registration %s\n", reg.ID)
		for _, name := range model.Fields() {
			if name.Kind() == model.KindSecret {
				continue
			}
			fmt.Fprintf(&buf, "  %s: %s\n", name.Label(), reg.Form.Value(name))
		}
		return buf.Bytes(), nil
	}
}

func selectOptions(snap session.Snapshot, name model.FieldName) []string {
	switch name {
	case model.FieldGender:
		return snap.Genders
	case model.FieldCountry:
		return snap.Countries
	case model.FieldState:
		return snap.StateOptions
	case model.FieldCity:
		return snap.CityOptions
	default:
		return nil
	}
}
