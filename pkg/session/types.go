package session

import (
	"time"

	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/model"
)

// Phase is the session lifecycle state.
type Phase string

const (
	PhaseEditing   Phase = "editing"
	PhaseSubmitted Phase = "submitted"
)

// Event is a single field change coming from a UI layer.
type Event struct {
	Field string `json:"field" msgpack:"field"`
	Value string `json:"value" msgpack:"value"`
}

// Registration records an accepted submission. Passwords are never kept.
type Registration struct {
	ID          string          `json:"id" yaml:"id" msgpack:"id"`
	SessionID   string          `json:"sessionId" yaml:"sessionId" msgpack:"sessionId"`
	SubmittedAt time.Time       `json:"submittedAt" yaml:"submittedAt" msgpack:"submittedAt"`
	Form        model.FormState `json:"form" yaml:"form" msgpack:"form"`
}

// Snapshot is everything a UI needs to redraw the form after an event.
// State has its password fields redacted.
type Snapshot struct {
	ID           string            `json:"id" msgpack:"id"`
	Revision     uint64            `json:"revision" msgpack:"revision"`
	Phase        Phase             `json:"phase" msgpack:"phase"`
	State        model.FormState   `json:"state" msgpack:"state"`
	Result       engine.Result     `json:"result" msgpack:"result"`
	Strength     engine.Strength   `json:"strength" msgpack:"strength"`
	HasPassword  bool              `json:"hasPassword" msgpack:"hasPassword"`
	Countries    []string          `json:"countries" msgpack:"countries"`
	StateOptions []string          `json:"stateOptions" msgpack:"stateOptions"`
	CityOptions  []string          `json:"cityOptions" msgpack:"cityOptions"`
	Genders      []string          `json:"genders" msgpack:"genders"`
	Touched      []model.FieldName `json:"touched,omitempty" msgpack:"touched,omitempty"`
	Attempted    bool              `json:"attempted" msgpack:"attempted"`
	Registration *Registration     `json:"registration,omitempty" msgpack:"registration,omitempty"`
}

// IsTouched reports whether the field received an event since the last reset.
func (s Snapshot) IsTouched(name model.FieldName) bool {
	for _, t := range s.Touched {
		if t == name {
			return true
		}
	}
	return false
}
