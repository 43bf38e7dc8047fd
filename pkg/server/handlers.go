package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/view"
)

// SubmitResponse is the body returned by the submit route.
type SubmitResponse struct {
	Accepted bool             `json:"accepted"`
	Result   engine.Result    `json:"result"`
	Snapshot session.Snapshot `json:"snapshot"`
}

type problem struct {
	Error string `json:"error"`
}

// fieldRequest accepts any JSON scalar as the value so checkboxes can send
// true/false directly.
type fieldRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Create()
	s.logger.Info("session created", zap.String("session", sess.ID()))
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.Delete(id) {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", session.ErrNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req fieldRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("server: decode event: %w", err))
		return
	}
	value, err := scalarValue(req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := sess.Apply(session.Event{Field: req.Field, Value: value})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	outcome, snap, err := sess.Submit(r.Context())
	if errors.Is(err, session.ErrSubmitInProgress) {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		s.logger.Error("submit failed", zap.String("session", sess.ID()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	status := http.StatusOK
	if !outcome.Accepted() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, SubmitResponse{
		Accepted: outcome.Accepted(),
		Result:   outcome.Result,
		Snapshot: snap,
	})
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	opts := s.viewOptions
	if r.URL.Query().Get("errors") == "all" {
		opts = append(append([]view.Option(nil), opts...), view.WithAllErrors())
	}
	html, err := s.renderer.Render(view.Build(sess.Snapshot(), opts...))
	if err != nil {
		s.logger.Error("render form", zap.String("session", sess.ID()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

func scalarValue(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var out string
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", fmt.Errorf("server: decode value: %w", err)
		}
		return out, nil
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "", errors.New("server: value must be a string, number or boolean")
	}
	return trimmed, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, problem{Error: msg})
}
