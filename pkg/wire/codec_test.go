package wire

import (
	"errors"
	"testing"

	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/session"
)

func TestCodecs_SnapshotFrame(t *testing.T) {
	snap := session.Snapshot{
		ID:       "abc",
		Revision: 3,
		Phase:    session.PhaseEditing,
		State:    model.FormState{FirstName: "Ganesh", Country: "India"},
		Result: engine.Result{
			Fields: map[model.FieldName]engine.FieldResult{
				model.FieldLastName:        {Status: engine.StatusMissing},
				model.FieldConfirmPassword: {Status: engine.StatusInvalid, Reason: engine.ReasonMismatch},
			},
		},
		Strength:     engine.StrengthMedium,
		StateOptions: []string{"Gujarat"},
	}

	for _, codec := range []Codec{NewJSONCodec(), NewMsgPackCodec()} {
		data, err := codec.Encode(SnapshotFrame("7", snap))
		if err != nil {
			t.Fatalf("%s encode: %v", codec.Name(), err)
		}
		got, err := codec.Decode(data)
		if err != nil {
			t.Fatalf("%s decode: %v", codec.Name(), err)
		}
		if got.Type != FrameSnapshot || got.Ref != "7" || got.Snapshot == nil {
			t.Fatalf("%s: unexpected frame %+v", codec.Name(), got)
		}
		if got.Snapshot.Strength != engine.StrengthMedium {
			t.Fatalf("%s: strength lost, got %s", codec.Name(), got.Snapshot.Strength)
		}
		if got.Snapshot.Result.Field(model.FieldConfirmPassword).Reason != engine.ReasonMismatch {
			t.Fatalf("%s: field result lost: %+v", codec.Name(), got.Snapshot.Result)
		}
	}
}

func TestCodecs_RejectBadInput(t *testing.T) {
	if _, err := NewJSONCodec().Decode([]byte(`{"ref":"1"}`)); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame for missing type, got %v", err)
	}
	if _, err := NewJSONCodec().Decode([]byte(`nope`)); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame for garbage, got %v", err)
	}
	if _, err := NewMsgPackCodec().Decode([]byte{0xc1}); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame for bad msgpack, got %v", err)
	}
	if _, err := NewJSONCodec().Encode(nil); !errors.Is(err, ErrInvalidFrame) {
		t.Fatalf("expected ErrInvalidFrame for nil frame")
	}
}

func TestForName(t *testing.T) {
	for name, want := range map[string]string{
		"":                "json",
		"regform.msgpack": "msgpack",
		"JSON":            "json",
	} {
		c, err := ForName(name)
		if err != nil || c.Name() != want {
			t.Fatalf("ForName(%q) = %v, %v; want %s", name, c, err, want)
		}
	}
	if _, err := ForName("xml"); !errors.Is(err, ErrUnknownCodec) {
		t.Fatalf("expected ErrUnknownCodec, got %v", err)
	}
}
