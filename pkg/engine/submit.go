package engine

import "github.com/goliatone/go-regform/pkg/model"

// Decision tells whether a submission went through.
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// Outcome is the result of Submit. Result is always populated so a rejected
// caller can show what blocked it.
type Outcome struct {
	Decision Decision `json:"decision" msgpack:"decision"`
	Result   Result   `json:"result" msgpack:"result"`
}

// Accepted reports whether the submission was accepted.
func (o Outcome) Accepted() bool {
	return o.Decision == DecisionAccepted
}

// Submit accepts state only when Validate allows submission. After an
// accepted submit the caller starts over from model.Empty().
func (e *Engine) Submit(state model.FormState) Outcome {
	res := e.Validate(state)
	if !res.CanSubmit {
		return Outcome{Decision: DecisionRejected, Result: res}
	}
	return Outcome{Decision: DecisionAccepted, Result: res}
}
