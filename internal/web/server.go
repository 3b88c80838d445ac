// Package web serves the interactive mind map to browsers. Every browser
// gets its own session, keyed by a cookie.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/metrics"
	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/panel"
	"github.com/msalah0e/chainmap/internal/session"
)

// CookieName is the session cookie.
const CookieName = "chainmap_session"

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	Addr string
	// ExitTransition is how long the browser animates the panel closing
	// before it reports completion.
	ExitTransition time.Duration
	// IdleTimeout evicts sessions untouched for this long. Zero keeps them.
	IdleTimeout time.Duration
	Logger      *slog.Logger
	Metrics     *metrics.Registry
}

type entry struct {
	mu       sync.Mutex
	s        *session.Session
	lastSeen time.Time
}

// Server is the chainmap preview server.
type Server struct {
	ds      *dataset.Dataset
	graph   *mindmap.Graph
	opts    Options
	log     *slog.Logger
	metrics *metrics.Registry
	tmpl    *template.Template

	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

// New creates a server over an already laid-out graph.
func New(ds *dataset.Dataset, g *mindmap.Graph, opts Options) (*Server, error) {
	tmpl, err := template.New("chainmap").Funcs(template.FuncMap{
		"sectorColor":   panel.SectorColor,
		"resourceColor": panel.ResourceColor,
		"join":          strings.Join,
		"inc":           func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		ds:       ds,
		graph:    g,
		opts:     opts,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		tmpl:     tmpl,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewRegistry()
	}
	return s, nil
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /nodes/{id}/activate", s.handleActivate)
	mux.HandleFunc("POST /panel/close", s.handleClose)
	mux.HandleFunc("POST /panel/settled", s.handleSettled)
	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /api/panel", s.handlePanel)
	mux.HandleFunc("GET /export/{format}", s.handleExport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return s.instrument(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("serving", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// session returns the caller's session entry, creating one and setting the
// cookie when the request carries none or an unknown id.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, err := r.Cookie(CookieName); err == nil {
		if e, ok := s.sessions[c.Value]; ok {
			e.lastSeen = now
			return e
		}
	}

	s.evictLocked(now)
	id := uuid.NewString()
	e := &entry{
		s:        session.New(s.graph, session.WithLogger(s.log.With("session", id))),
		lastSeen: now,
	}
	s.sessions[id] = e
	s.metrics.SessionsActive.Set(float64(len(s.sessions)))
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.log.Debug("session created", "session", id)
	return e
}

func (s *Server) evictLocked(now time.Time) {
	if s.opts.IdleTimeout <= 0 {
		return
	}
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.opts.IdleTimeout {
			delete(s.sessions, id)
			s.log.Debug("session evicted", "session", id)
		}
	}
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.statusCode == 0 {
			rec.statusCode = http.StatusOK
		}
		elapsed := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RecordHTTPRequest(r.Method, route, fmt.Sprint(rec.statusCode), elapsed)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.statusCode, "duration", elapsed)
	})
}

// responseRecorder captures the HTTP status code.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}
