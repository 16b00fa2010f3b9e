package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/quartzui/quartz/pkg/dom"
	"github.com/quartzui/quartz/pkg/middleware"
	"github.com/quartzui/quartz/pkg/renderer"
	"github.com/quartzui/quartz/pkg/scheduler"
	"github.com/quartzui/quartz/pkg/vdom"
)

// Server hosts a Quartz application over HTTP and WebSocket. Each page
// request renders a fresh instance of the root component to HTML; each
// WebSocket connection gets its own live session whose document mutations
// are streamed to the client as protocol ops.
type Server struct {
	root    func() vdom.Component
	config  *Config
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *middleware.Metrics

	router     chi.Router
	upgrader   websocket.Upgrader
	httpServer *http.Server

	extra []func(http.Handler) http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the server configuration. Unset fields fall back to
// defaults.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		s.config = cfg.Clone()
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l.With("component", "server")
	}
}

// WithMetrics wires Prometheus collectors into the server: requests are
// counted by status class and sessions/events are observed as they happen.
func WithMetrics(m *middleware.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithMiddleware appends HTTP middleware applied to all routes.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Server) {
		s.extra = append(s.extra, mw...)
	}
}

// New creates a server around a root component factory. The factory is
// called once per page request and once per live session, so each session
// gets independent component state.
func New(root func() vdom.Component, opts ...Option) *Server {
	s := &Server{
		root:   root,
		config: DefaultConfig(),
		logger: slog.Default().With("component", "server"),
		tracer: otel.Tracer("github.com/quartzui/quartz/pkg/server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.config.applyDefaults()

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:    s.config.ReadBufferSize,
		WriteBufferSize:   s.config.WriteBufferSize,
		CheckOrigin:       s.config.CheckOrigin,
		EnableCompression: s.config.EnableCompression,
	}

	s.router = chi.NewRouter()
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)
	if s.metrics != nil {
		s.router.Use(s.metrics.Handler)
	}
	for _, mw := range s.extra {
		s.router.Use(mw)
	}
	s.router.Get("/", s.handleIndex)
	s.router.Get("/ws", s.handleWS)
	s.router.Get("/healthz", s.handleHealth)

	return s
}

// Handler returns the server's HTTP handler, for embedding in an existing
// mux or for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until the context is canceled, then shuts down
// gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen on %s: %w", s.config.Address, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.config.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// handleIndex renders the root component to a full HTML page. The render
// is throwaway: live state starts when the client connects to /ws.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := dom.NewDocument()
	queue := scheduler.NewQueue()
	rend := renderer.New(doc, renderer.WithQueue(queue), renderer.WithLogger(s.logger))

	root := vdom.H(s.root())
	rend.Render(root, doc.Body)
	queue.Flush()

	// Unmount empties the document, so serialize first.
	page := doc.HTML()
	rend.Unmount(root)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, page)
}

// handleWS upgrades the connection and runs a live session on it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	sess := newSession(s, conn)
	if s.metrics != nil {
		s.metrics.ActiveSessions.Inc()
		defer s.metrics.ActiveSessions.Dec()
	}
	sess.run(r.Context())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Quartz</title></head>
<body>%s</body>
</html>
`
