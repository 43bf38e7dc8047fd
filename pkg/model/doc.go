// Package model defines the registration form state shared by the engine,
// sessions, renderers and transports. FormState is a plain value: copying it
// copies the form, so callers can keep earlier states around without aliasing.
package model
