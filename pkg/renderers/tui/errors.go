package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrRejected is returned when the form still blocks submission after the
	// last allowed round.
	ErrRejected = errors.New("tui: registration rejected")
)
