// Package wire defines the frames exchanged on a live registration session
// and the codecs that serialise them.
package wire

import "github.com/goliatone/go-regform/pkg/session"

// FrameType names the purpose of a frame.
type FrameType string

const (
	// Client to server.
	FrameEvent  FrameType = "event"
	FrameSubmit FrameType = "submit"
	FrameReset  FrameType = "reset"

	// Server to client.
	FrameSnapshot FrameType = "snapshot"
	FrameError    FrameType = "error"
)

// Frame is a single message. Ref echoes the client reference so replies can
// be matched to requests.
type Frame struct {
	Type     FrameType         `json:"type" msgpack:"type"`
	Ref      string            `json:"ref,omitempty" msgpack:"ref,omitempty"`
	Event    *session.Event    `json:"event,omitempty" msgpack:"event,omitempty"`
	Snapshot *session.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Accepted *bool             `json:"accepted,omitempty" msgpack:"accepted,omitempty"`
	Error    string            `json:"error,omitempty" msgpack:"error,omitempty"`
}

// SnapshotFrame builds a reply frame.
func SnapshotFrame(ref string, snap session.Snapshot) *Frame {
	return &Frame{Type: FrameSnapshot, Ref: ref, Snapshot: &snap}
}

// ErrorFrame builds an error reply.
func ErrorFrame(ref string, err error) *Frame {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Frame{Type: FrameError, Ref: ref, Error: msg}
}
