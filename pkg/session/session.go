package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/model"
)

// Session owns one FormState. All methods are safe for concurrent use; each
// call is applied atomically in the order it acquires the lock.
type Session struct {
	mu sync.Mutex

	id     string
	engine *engine.Engine
	cfg    config

	state      model.FormState
	phase      Phase
	revision   uint64
	touched    map[model.FieldName]struct{}
	attempted  bool
	lastReg    *Registration
	lastActive time.Time
}

// New starts an empty Editing session.
func New(e *engine.Engine, options ...Option) *Session {
	return newSession(e, newConfig(options...))
}

func newSession(e *engine.Engine, cfg config) *Session {
	id := ""
	if cfg.newID != nil {
		id = cfg.newID()
	}
	if id == "" {
		id = uuid.NewString()
	}
	s := &Session{
		id:         id,
		engine:     e,
		cfg:        cfg,
		phase:      PhaseEditing,
		touched:    make(map[model.FieldName]struct{}),
		lastActive: cfg.clock(),
	}
	s.cfg.logger = cfg.logger.With(zap.String("session", id))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Apply records one field change. The returned snapshot reflects the change;
// unknown fields and malformed checkbox values are rejected with an error and
// leave the state untouched.
func (s *Session) Apply(ev Event) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, ok := model.ParseFieldName(ev.Field)
	if !ok {
		return s.snapshotLocked(), fmt.Errorf("%w: %q", engine.ErrUnknownField, ev.Field)
	}

	next, err := s.engine.SetField(s.state, name, ev.Value)
	if err != nil {
		return s.snapshotLocked(), err
	}

	s.state = next
	s.touched[name] = struct{}{}
	s.lastReg = nil
	s.revision++
	s.lastActive = s.cfg.clock()

	s.cfg.logger.Debug("field updated",
		zap.String("field", name.String()),
		zap.Uint64("revision", s.revision),
	)
	return s.snapshotLocked(), nil
}

// Submit runs the submit gate. On acceptance the session passes through
// Submitted, notifies the hook, and returns to Editing with an empty form.
// The returned error is non-nil only when the hook fails or another
// submission is still in flight.
//
// The hook runs outside the session lock. Edits applied while it runs are
// kept: the form is only cleared when nothing changed since acceptance.
func (s *Session) Submit(ctx context.Context) (engine.Outcome, Snapshot, error) {
	s.mu.Lock()
	if s.phase == PhaseSubmitted {
		defer s.mu.Unlock()
		return engine.Outcome{}, s.snapshotLocked(), ErrSubmitInProgress
	}

	s.lastActive = s.cfg.clock()
	s.attempted = true
	outcome := s.engine.Submit(s.state)
	if !outcome.Accepted() {
		defer s.mu.Unlock()
		s.revision++
		s.cfg.logger.Info("submission rejected",
			zap.Int("blocking", len(outcome.Result.Blocking())),
			zap.Stringers("fields", outcome.Result.Blocking()),
		)
		return outcome, s.snapshotLocked(), nil
	}

	s.phase = PhaseSubmitted
	s.revision++
	accepted := s.revision
	reg := Registration{
		ID:          uuid.NewString(),
		SessionID:   s.id,
		SubmittedAt: s.cfg.clock(),
		Form:        s.state.Redacted(),
	}
	s.mu.Unlock()

	var hookErr error
	if s.cfg.hook != nil {
		hookErr = s.cfg.hook(ctx, reg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseEditing
	if hookErr != nil {
		s.revision++
		s.cfg.logger.Warn("submit hook failed", zap.Error(hookErr))
		return outcome, s.snapshotLocked(), fmt.Errorf("%w: %w", ErrSubmitHook, hookErr)
	}

	s.cfg.logger.Info("registration accepted", zap.String("registration", reg.ID))
	if s.revision == accepted {
		s.resetLocked()
	} else {
		s.revision++
		s.cfg.logger.Debug("form changed during submit hook, keeping values")
	}
	s.lastReg = &reg
	return outcome, s.snapshotLocked(), nil
}

// Reset discards every value and returns to a fresh Editing state.
func (s *Session) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.lastActive = s.cfg.clock()
	return s.snapshotLocked()
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State returns a copy of the current form values, passwords included.
func (s *Session) State() model.FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) resetLocked() {
	s.state = model.Empty()
	s.phase = PhaseEditing
	s.touched = make(map[model.FieldName]struct{})
	s.attempted = false
	s.lastReg = nil
	s.revision++
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:           s.id,
		Revision:     s.revision,
		Phase:        s.phase,
		State:        s.state.Redacted(),
		Result:       s.engine.Validate(s.state),
		Strength:     engine.PasswordStrength(s.state.Password),
		HasPassword:  s.state.Password != "",
		Countries:    catalog.Collect(s.engine.Countries()),
		StateOptions: catalog.Collect(s.engine.StateOptions(s.state.Country)),
		CityOptions:  catalog.Collect(s.engine.CityOptions(s.state.Country, s.state.State)),
		Genders:      s.engine.Genders(),
		Attempted:    s.attempted,
	}
	for _, name := range model.Fields() {
		if _, ok := s.touched[name]; ok {
			snap.Touched = append(snap.Touched, name)
		}
	}
	if s.lastReg != nil {
		reg := *s.lastReg
		snap.Registration = &reg
	}
	return snap
}
