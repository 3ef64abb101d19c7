// Package http exposes the statement engine as a JSON API.
package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"

	"homeledger/internal/auth"
	"homeledger/internal/metrics"
	"homeledger/internal/middleware/ratelimit"
	"homeledger/internal/middleware/trace"
	"homeledger/internal/services"
)

// Server wires handlers, middleware and graceful shutdown around the
// standard library HTTP server.
type Server struct {
	http.Server

	statements *services.StatementService
	reports    *services.ReportService
	authn      auth.Authenticator
	tokens     *auth.JWTManager

	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	metrics      *metrics.Metrics
	shutdownOnce sync.Once
}

// Deps collects everything the server needs to run.
type Deps struct {
	Statements *services.StatementService
	Reports    *services.ReportService
	Authn      auth.Authenticator
	Tokens     *auth.JWTManager
	Metrics    *metrics.Metrics

	RateLimitPerMinute int
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		statements: deps.Statements,
		reports:    deps.Reports,
		authn:      deps.Authn,
		tokens:     deps.Tokens,
		limiter:    ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.RateLimitPerMinute}),
		tracer:     trace.NewMiddleware(extractClientIP),
		metrics:    deps.Metrics,
	}

	mux.HandleFunc("/healthz", handleHealth)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	mux.Handle("/api/register", s.public("/api/register", http.HandlerFunc(s.handleRegister)))
	mux.Handle("/api/login", s.public("/api/login", http.HandlerFunc(s.handleLogin)))
	mux.Handle("/api/quick-report", s.public("/api/quick-report", http.HandlerFunc(s.handleQuickReport)))

	mux.Handle("/api/statements", s.protected("/api/statements", http.HandlerFunc(s.handleStatements)))
	mux.Handle("/api/statements/", s.protected("/api/statements/{id}", http.HandlerFunc(s.handleStatementByID)))

	return s
}

// public applies the middleware chain for unauthenticated routes.
func (s *Server) public(pattern string, h http.Handler) http.Handler {
	if s.metrics != nil {
		h = s.metrics.Middleware(pattern, h)
	}
	h = s.limiter.Middleware(extractClientIP)(h)
	return s.tracer.Middleware(h)
}

// protected adds token validation on top of the public chain.
func (s *Server) protected(pattern string, h http.Handler) http.Handler {
	return s.public(pattern, auth.RequireAuth(s.tokens, h))
}

// Shutdown stops the rate limiter and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientIP prefers proxy headers over the socket address.
func extractClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
