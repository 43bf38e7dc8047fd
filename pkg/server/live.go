package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/wire"
)

// handleLive upgrades to a WebSocket. The first frame sent is the current
// snapshot; afterwards every inbound frame gets exactly one reply, in order.
// Once the session is deleted or evicted the next frame is answered with a
// not found error and the connection is closed.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:       wire.Subprotocols(),
		OriginPatterns:     s.allowedOrigins,
		InsecureSkipVerify: s.insecureOrigins,
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.String("session", sess.ID()), zap.Error(err))
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(s.readLimit)

	codec, err := wire.ForName(conn.Subprotocol())
	if err != nil {
		conn.Close(websocket.StatusProtocolError, "unsupported subprotocol")
		return
	}

	logger := s.logger.With(zap.String("session", sess.ID()), zap.String("codec", codec.Name()))
	logger.Info("live connection opened")

	ctx := r.Context()
	if err := s.send(ctx, conn, codec, wire.SnapshotFrame("", sess.Snapshot())); err != nil {
		logger.Debug("initial snapshot", zap.Error(err))
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				logger.Info("live connection closed")
			default:
				if !errors.Is(err, context.Canceled) {
					logger.Debug("live read", zap.Error(err))
				}
			}
			return
		}

		if current, err := s.store.Get(sess.ID()); err != nil || current != sess {
			logger.Info("session removed, closing live connection")
			ref := ""
			if frame, err := codec.Decode(data); err == nil {
				ref = frame.Ref
			}
			if err := s.send(ctx, conn, codec, wire.ErrorFrame(ref, session.ErrNotFound)); err == nil {
				conn.Close(websocket.StatusGoingAway, "session removed")
			}
			return
		}

		reply := s.dispatch(ctx, sess, codec, data)
		if err := s.send(ctx, conn, codec, reply); err != nil {
			logger.Debug("live write", zap.Error(err))
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, sess *session.Session, codec wire.Codec, data []byte) *wire.Frame {
	frame, err := codec.Decode(data)
	if err != nil {
		return wire.ErrorFrame("", err)
	}

	switch frame.Type {
	case wire.FrameEvent:
		if frame.Event == nil {
			return wire.ErrorFrame(frame.Ref, wire.ErrInvalidFrame)
		}
		snap, err := sess.Apply(*frame.Event)
		if err != nil {
			return wire.ErrorFrame(frame.Ref, err)
		}
		return wire.SnapshotFrame(frame.Ref, snap)
	case wire.FrameSubmit:
		outcome, snap, err := sess.Submit(ctx)
		if err != nil {
			return wire.ErrorFrame(frame.Ref, err)
		}
		reply := wire.SnapshotFrame(frame.Ref, snap)
		accepted := outcome.Accepted()
		reply.Accepted = &accepted
		return reply
	case wire.FrameReset:
		return wire.SnapshotFrame(frame.Ref, sess.Reset())
	default:
		return wire.ErrorFrame(frame.Ref, wire.ErrInvalidFrame)
	}
}

func (s *Server) send(ctx context.Context, conn *websocket.Conn, codec wire.Codec, frame *wire.Frame) error {
	data, err := codec.Encode(frame)
	if err != nil {
		return err
	}
	typ := websocket.MessageText
	if codec.Binary() {
		typ = websocket.MessageBinary
	}
	return conn.Write(ctx, typ, data)
}
