// Package server exposes registration sessions over HTTP and WebSocket.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/apidoc"
	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/engine"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/view"
)

const (
	defaultMaxBody   = 64 << 10
	defaultReadLimit = 64 << 10
)

// Server wires the session store, option catalog, view renderer and the live
// endpoint onto a single http.Handler.
type Server struct {
	engine   *engine.Engine
	store    *session.Store
	renderer *view.Renderer
	logger   *zap.Logger
	mux      *http.ServeMux

	allowedOrigins  []string
	insecureOrigins bool
	viewOptions     []view.Option
	sessionOptions  []session.Option
	maxBody         int64
	readLimit       int64
	patterns        []string
	handler         http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for requests and live connections.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore supplies an existing session store.
func WithStore(store *session.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithSessionOptions configures the store built when WithStore is not given.
func WithSessionOptions(options ...session.Option) Option {
	return func(s *Server) {
		s.sessionOptions = append(s.sessionOptions, options...)
	}
}

// WithRenderer overrides the HTML renderer.
func WithRenderer(r *view.Renderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// WithViewOptions passes options to view.Build for every rendered form.
func WithViewOptions(options ...view.Option) Option {
	return func(s *Server) {
		s.viewOptions = append(s.viewOptions, options...)
	}
}

// WithAllowedOrigins lists extra host patterns accepted on the live
// endpoint. Same-origin requests are always accepted. A single "*" disables
// the check.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		for _, o := range origins {
			if o == "*" {
				s.insecureOrigins = true
				continue
			}
			if o != "" {
				s.allowedOrigins = append(s.allowedOrigins, o)
			}
		}
	}
}

// WithReadLimit caps the size of a single inbound WebSocket message.
func WithReadLimit(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.readLimit = n
		}
	}
}

// New builds a Server over e.
func New(e *engine.Engine, options ...Option) (*Server, error) {
	if e == nil {
		return nil, fmt.Errorf("server: engine is nil")
	}
	s := &Server{
		engine:    e,
		logger:    zap.NewNop(),
		mux:       http.NewServeMux(),
		maxBody:   defaultMaxBody,
		readLimit: defaultReadLimit,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.store == nil {
		opts := append([]session.Option{session.WithLogger(s.logger.Named("session"))}, s.sessionOptions...)
		s.store = session.NewStore(e, opts...)
	}
	if s.renderer == nil {
		r, err := view.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("server: renderer: %w", err)
		}
		s.renderer = r
	}

	if err := s.routes(); err != nil {
		return nil, err
	}
	s.handler = recoverer(s.logger, requestLogger(s.logger, s.mux))
	return s, nil
}

func (s *Server) routes() error {
	doc, err := apidoc.Load(context.Background())
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	docHandler, err := apidoc.Handler(doc)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	handle := func(pattern string, h http.HandlerFunc) {
		s.mux.Handle(pattern, h)
		s.patterns = append(s.patterns, pattern)
	}
	handle("POST /api/sessions", s.handleCreate)
	handle("GET /api/sessions/{id}", s.handleGet)
	handle("DELETE /api/sessions/{id}", s.handleDelete)
	handle("POST /api/sessions/{id}/fields", s.handleField)
	handle("POST /api/sessions/{id}/submit", s.handleSubmit)
	handle("GET /api/sessions/{id}/form", s.handleForm)
	handle("GET /api/sessions/{id}/live", s.handleLive)
	s.mux.Handle("GET /openapi.json", docHandler)
	s.patterns = append(s.patterns, "GET /openapi.json")

	locations, err := catalog.RegisterRoutes(methodMux{mux: s.mux, method: http.MethodGet}, "", catalog.WithCatalog(s.engine.Catalog()))
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	for _, p := range locations {
		s.patterns = append(s.patterns, http.MethodGet+" "+p)
	}
	s.methodFallbacks()
	return nil
}

// methodFallbacks registers a method-less pattern for every routed path so
// requests with an unsupported method get a JSON 405 instead of the mux's
// plain text reply.
func (s *Server) methodFallbacks() {
	allowed := make(map[string][]string)
	var paths []string
	for _, pattern := range s.patterns {
		method, path, ok := strings.Cut(pattern, " ")
		if !ok {
			continue
		}
		if _, seen := allowed[path]; !seen {
			paths = append(paths, path)
		}
		allowed[path] = append(allowed[path], method)
		if method == http.MethodGet {
			allowed[path] = append(allowed[path], http.MethodHead)
		}
	}
	for _, path := range paths {
		allow := strings.Join(allowed[path], ", ")
		s.mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Allow", allow)
			writeError(w, http.StatusMethodNotAllowed, nil)
		})
	}
}

// Handler returns the root handler with request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Store exposes the session store, mainly so callers can run its janitor.
func (s *Server) Store() *session.Store {
	return s.store
}

// Patterns lists the registered route patterns.
func (s *Server) Patterns() []string {
	return append([]string(nil), s.patterns...)
}

// methodMux prefixes catalog patterns with a method so they sit next to the
// method-scoped session routes.
type methodMux struct {
	mux    *http.ServeMux
	method string
}

func (m methodMux) Handle(pattern string, h http.Handler) {
	m.mux.Handle(m.method+" "+pattern, h)
}
