// Package engine implements the registration form rules: the country, state
// and city cascade, password strength scoring, per-field validation and the
// submit gate.
//
// Every operation is a pure function of the FormState it receives. Invalid
// input is reported as data in a Result, never as an error; errors are kept
// for programmer mistakes such as unknown field names.
package engine
