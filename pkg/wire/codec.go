package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrInvalidFrame = errors.New("wire: invalid frame")
	ErrUnknownCodec = errors.New("wire: unknown codec")
)

// Codec serialises frames.
type Codec interface {
	Encode(f *Frame) ([]byte, error)
	Decode(data []byte) (*Frame, error)
	// Name doubles as the WebSocket subprotocol suffix.
	Name() string
	ContentType() string
	// Binary reports whether encoded frames are binary rather than text.
	Binary() bool
}

// JSONCodec encodes frames as JSON text.
type JSONCodec struct{}

func NewJSONCodec() *JSONCodec { return &JSONCodec{} }

func (c *JSONCodec) Encode(f *Frame) ([]byte, error) {
	if f == nil {
		return nil, ErrInvalidFrame
	}
	return json.Marshal(f)
}

func (c *JSONCodec) Decode(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	if f.Type == "" {
		return nil, ErrInvalidFrame
	}
	return &f, nil
}

func (c *JSONCodec) Name() string        { return "json" }
func (c *JSONCodec) ContentType() string { return "application/json" }
func (c *JSONCodec) Binary() bool        { return false }

// MsgPackCodec encodes frames as MessagePack.
type MsgPackCodec struct{}

func NewMsgPackCodec() *MsgPackCodec { return &MsgPackCodec{} }

func (c *MsgPackCodec) Encode(f *Frame) ([]byte, error) {
	if f == nil {
		return nil, ErrInvalidFrame
	}
	return msgpack.Marshal(f)
}

func (c *MsgPackCodec) Decode(data []byte) (*Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFrame, err)
	}
	if f.Type == "" {
		return nil, ErrInvalidFrame
	}
	return &f, nil
}

func (c *MsgPackCodec) Name() string        { return "msgpack" }
func (c *MsgPackCodec) ContentType() string { return "application/msgpack" }
func (c *MsgPackCodec) Binary() bool        { return true }

// SubprotocolPrefix prefixes codec names in WebSocket subprotocols.
const SubprotocolPrefix = "regform."

// Subprotocols lists the WebSocket subprotocols in preference order.
func Subprotocols() []string {
	return []string{SubprotocolPrefix + "json", SubprotocolPrefix + "msgpack"}
}

// ForName resolves a codec by name or subprotocol. Empty selects JSON.
func ForName(name string) (Codec, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), SubprotocolPrefix) {
	case "", "json":
		return NewJSONCodec(), nil
	case "msgpack":
		return NewMsgPackCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}
