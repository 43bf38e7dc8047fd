// Package session owns one registration FormState per user and moves it
// through the Editing and Submitted phases. Events are applied one at a time
// under the session lock, in the order callers deliver them.
package session
