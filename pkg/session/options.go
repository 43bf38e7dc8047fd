package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SubmitHook receives every accepted registration. Returning an error keeps
// the session in Editing with its values intact. The hook runs without the
// session lock held, so it may read the session; while it runs the session
// reports PhaseSubmitted.
type SubmitHook func(ctx context.Context, reg Registration) error

// Option configures sessions and stores.
type Option func(*config)

type config struct {
	logger *zap.Logger
	hook   SubmitHook
	clock  func() time.Time
	ttl    time.Duration
	newID  func() string
}

func newConfig(options ...Option) config {
	cfg := config{
		logger: zap.NewNop(),
		clock:  time.Now,
		ttl:    30 * time.Minute,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.clock == nil {
		cfg.clock = time.Now
	}
	return cfg
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSubmitHook registers a callback for accepted submissions.
func WithSubmitHook(hook SubmitHook) Option {
	return func(c *config) {
		c.hook = hook
	}
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithTTL sets how long an idle session survives in a Store. Zero disables
// eviction.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithIDGenerator overrides the uuid based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *config) {
		c.newID = fn
	}
}
