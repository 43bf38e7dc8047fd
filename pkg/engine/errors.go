package engine

import "errors"

// ErrUnknownField is returned when SetField receives a name outside the form.
var ErrUnknownField = errors.New("engine: unknown field")
