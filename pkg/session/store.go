package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/engine"
)

// Store keeps sessions in memory keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	engine   *engine.Engine
	cfg      config
}

// NewStore builds an empty store. Options apply to every session it creates.
func NewStore(e *engine.Engine, options ...Option) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		engine:   e,
		cfg:      newConfig(options...),
	}
}

// maxIDAttempts bounds how often a custom id generator is retried on a
// collision before Create falls back to uuids.
const maxIDAttempts = 8

// Create starts a new session and registers it. An id that is already in use
// is never reused: the generator is retried and, if it keeps colliding, the
// session gets a uuid instead.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	cfg := st.cfg
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			st.cfg.logger.Warn("session id generator keeps colliding, using uuid")
			cfg.newID = nil
		}
		s := newSession(st.engine, cfg)
		if _, taken := st.sessions[s.ID()]; taken {
			continue
		}
		st.sessions[s.ID()] = s
		st.cfg.logger.Debug("session created", zap.String("session", s.ID()))
		return s
	}
}

// Get looks up a session.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes a session and reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Evict drops sessions idle for longer than the TTL and returns how many were
// removed.
func (st *Store) Evict() int {
	if st.cfg.ttl <= 0 {
		return 0
	}
	cutoff := st.cfg.clock().Add(-st.cfg.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.cfg.logger.Info("sessions evicted", zap.Int("count", removed))
	}
	return removed
}

// Run evicts idle sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Evict()
		}
	}
}
