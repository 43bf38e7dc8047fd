package engine

import "github.com/goliatone/go-regform/pkg/model"

// Status is the outcome of validating one field.
type Status string

const (
	StatusValid   Status = "valid"
	StatusMissing Status = "missing"
	StatusInvalid Status = "invalid"
)

// ReasonMismatch is the Invalid reason for a confirm password that differs
// from the password.
const ReasonMismatch = "mismatch"

// ReasonUnknownOption is the Invalid reason for a select value that is not
// among the current options (strict option mode only).
const ReasonUnknownOption = "unknown option"

// FieldResult carries a field status and, for Invalid, the reason.
type FieldResult struct {
	Status Status `json:"status" msgpack:"status"`
	Reason string `json:"reason,omitempty" msgpack:"reason,omitempty"`
}

// Valid reports whether the field passed every rule.
func (r FieldResult) Valid() bool {
	return r.Status == StatusValid
}

func valid() FieldResult   { return FieldResult{Status: StatusValid} }
func missing() FieldResult { return FieldResult{Status: StatusMissing} }
func invalid(reason string) FieldResult {
	return FieldResult{Status: StatusInvalid, Reason: reason}
}

// Result is the outcome of validating a whole FormState.
type Result struct {
	Fields    map[model.FieldName]FieldResult `json:"fields" msgpack:"fields"`
	CanSubmit bool                            `json:"canSubmit" msgpack:"canSubmit"`
}

// Field returns the result for name; unknown names report Missing.
func (r Result) Field(name model.FieldName) FieldResult {
	if res, ok := r.Fields[name]; ok {
		return res
	}
	return missing()
}

// Blocking lists, in form order, every field that prevents submission.
func (r Result) Blocking() []model.FieldName {
	var out []model.FieldName
	for _, name := range model.Fields() {
		if !r.Field(name).Valid() {
			out = append(out, name)
		}
	}
	return out
}
