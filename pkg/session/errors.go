package session

import "errors"

var (
	// ErrNotFound is returned when a session id is unknown or expired.
	ErrNotFound = errors.New("session: not found")
	// ErrSubmitHook wraps failures reported by the submit hook.
	ErrSubmitHook = errors.New("session: submit hook failed")
	// ErrSubmitInProgress is returned when Submit is called while an earlier
	// accepted submission is still running its hook.
	ErrSubmitInProgress = errors.New("session: submission in progress")
)
