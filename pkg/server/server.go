// Package server exposes the provisioning handler over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/phonexml/pkg/httputil"
	"github.com/getmockd/phonexml/pkg/logging"
	"github.com/getmockd/phonexml/pkg/metrics"
	"github.com/getmockd/phonexml/pkg/provision"
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address, for example ":3000".
	Addr string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// DomainName is reported as the request context domain name. Empty
	// means the Host of each request.
	DomainName string
}

// Server serves phone requests, /healthz and optionally /metrics.
type Server struct {
	cfg      Config
	handler  *provision.Handler
	log      *slog.Logger
	registry *prometheus.Registry
	now      func() time.Time

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}
	serveErr   error
	startedAt  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics serves reg on /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// New creates a Server for h.
func New(h *provision.Handler, cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		handler: h,
		log:     logging.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routing handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePhone)
	mux.HandleFunc("GET /{operation}", s.handlePhone)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.registry != nil {
		mux.Handle("GET /metrics", metrics.Handler(s.registry))
	}
	return mux
}

// Start listens on the configured address and serves in the background.
// Listen errors are returned directly.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return errors.New("server already started")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	s.listener = ln
	s.startedAt = s.now()
	s.done = make(chan struct{})
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelError),
	}

	s.log.Info("starting phone server", "addr", ln.Addr().String(), "metrics", s.registry != nil)

	srv, done := s.httpServer, s.done
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("phone server error", "error", err)
			s.mu.Lock()
			s.serveErr = err
			s.mu.Unlock()
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv, done := s.httpServer, s.done
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.log.Info("stopping phone server")
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serveErr
}

func (s *Server) handlePhone(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	id := httputil.RequestID(r)
	req := ToRequest(r, s.cfg.DomainName, id, start)

	resp := s.handler.Handle(r.Context(), req)

	w.Header().Set(httputil.HeaderRequestID, id)
	if err := WriteResponse(w, resp); err != nil {
		s.log.WarnContext(r.Context(), "failed to encode document", "requestId", id, "error", err)
		if err := WriteResponse(w, provision.Failure(err)); err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, "encoding_failed", err.Error())
		}
	}

	s.log.InfoContext(r.Context(), "phone request",
		"method", r.Method,
		"path", r.URL.Path,
		"requestId", id,
		"sourceIp", req.RequestContext.HTTP.SourceIP,
		"duration", time.Since(start),
	)
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime int64  `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	started := s.startedAt
	s.mu.Unlock()

	var uptime int64
	if !started.IsZero() {
		uptime = int64(s.now().Sub(started).Seconds())
	}
	httputil.WriteOK(w, healthResponse{Status: "ok", Uptime: uptime})
}
