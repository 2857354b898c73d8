// Package server exposes the resolver over HTTP.
//
// The server wraps the resolution engine behind a small JSON API so CI
// systems and editors can resolve manifests without shelling out to the
// CLI. Results are cached by manifest content when a cache backend is
// configured.
//
// # Endpoints
//
//	POST /api/v1/resolve    resolve a manifest body, returns the result
//	GET  /healthz           liveness probe
//	GET  /version           build version
//
// A dependency cycle is reported as 422 Unprocessable Entity with the
// cycle chain, since the manifest is well-formed but unresolvable.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/deptower/pkg/cache"
	"github.com/matzehuels/deptower/pkg/manifest"
	"github.com/matzehuels/deptower/pkg/observability"
	"github.com/matzehuels/deptower/pkg/resolve"
)

// maxBodySize bounds manifest uploads. Real manifests are a few kilobytes.
const maxBodySize = 4 << 20

// Config configures a [Server].
type Config struct {
	// Addr is the listen address, for example ":8080".
	Addr string

	// Cache stores resolution results keyed by manifest content.
	// Nil disables caching.
	Cache cache.Cache

	// Log receives request and resolution logs. Nil uses the default logger.
	Log *log.Logger

	// Version is reported by the /version endpoint.
	Version string
}

// Server is the HTTP front end for the resolver.
type Server struct {
	cfg    Config
	cache  cache.Cache
	log    *log.Logger
	router chi.Router
}

// New creates a Server. The router is ready immediately; use [Server.Handler]
// for tests or [Server.ListenAndServe] to serve.
func New(cfg Config) *Server {
	logger := cfg.Log
	if logger == nil {
		logger = log.Default()
	}
	c := cfg.Cache
	if c == nil {
		c = cache.NewNull()
	}

	s := &Server{
		cfg:   cfg,
		cache: cache.Instrument(c),
		log:   logger,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/api/v1/resolve", s.handleResolve)
	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	s.router = r
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestID tags each request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type requestIDKey struct{}

// RequestID returns the request's correlation ID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// resolveRequest is the POST /api/v1/resolve body. It mirrors the manifest
// file shape so a manifest can be posted as-is.
type resolveRequest struct {
	Name                 string                          `json:"name"`
	Packages             []resolve.Package               `json:"packages"`
	ExternalDependencies map[string][]resolve.Dependency `json:"externalDependencies"`
}

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Error string   `json:"error"`
	Chain []string `json:"chain,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "read body: "+err.Error(), nil)
		return
	}

	key := cache.ResolutionKey(body)
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		_, _ = w.Write(data)
		return
	}

	var req resolveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "parse manifest: "+err.Error(), nil)
		return
	}

	p := &manifest.Project{
		Name:                 req.Name,
		Packages:             req.Packages,
		ExternalDependencies: req.ExternalDependencies,
	}
	if err := p.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	logf := func(format string, args ...any) {
		s.log.Warnf(format, args...)
	}
	observability.Resolver().OnResolveStart(r.Context(), len(p.Packages))
	start := time.Now()
	res, err := resolve.Resolve(p.Packages, resolve.Options{
		External: p.ExternalDependencies,
		Logger:   logf,
	})
	observability.Resolver().OnResolveComplete(r.Context(), len(p.Packages), time.Since(start), err)
	if err != nil {
		var cerr *resolve.CycleError
		if errors.As(err, &cerr) {
			s.writeError(w, http.StatusUnprocessableEntity, cerr.Error(), cerr.Chain)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	data, err := json.Marshal(res)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "encode result: "+err.Error(), nil)
		return
	}
	_ = s.cache.Set(r.Context(), key, data, cache.DefaultTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": s.cfg.Version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, chain []string) {
	s.writeJSON(w, status, errorResponse{Error: msg, Chain: chain})
}
