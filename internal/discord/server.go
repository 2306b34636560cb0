package discord

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/FarmBot_Go/internal/metrics"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// HTTPServer serves the health and metrics endpoints
type HTTPServer struct {
	server *http.Server
	bot    BotState
	store  Pinger
}

// NewHTTPServer creates the internal HTTP server. store may be nil.
func NewHTTPServer(port string, bot BotState, store Pinger) *HTTPServer {
	srv := &HTTPServer{bot: bot, store: store}
	srv.server = &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return srv
}

// Routes builds the router
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(metrics.Middleware)
	r.Get("/healthz", s.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// securityHeaders sets the response headers every internal endpoint carries
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// Start serves in the background
func (s *HTTPServer) Start() {
	go func() {
		slog.Info(LogMsgHTTPStarting, "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(LogMsgHTTPFailed, "error", err)
		}
	}()
}

// Stop shuts the server down, waiting briefly for in-flight requests
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error(LogMsgHTTPShutdownFailed, "error", err)
	}
}
