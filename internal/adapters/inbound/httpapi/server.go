package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pluginpulse/pluginpulse/internal/application"
	"github.com/pluginpulse/pluginpulse/internal/log"
)

// DefaultAddr binds localhost only; the JSON API carries no auth of its own.
const DefaultAddr = "127.0.0.1:8686"

// Server exposes scored plugin lists over HTTP. It is the AJAX-style surface
// a browser augmentation layer would call.
type Server struct {
	search *application.SearchService
	score  *application.ScoreService
	http   *http.Server
}

func New(search *application.SearchService, score *application.ScoreService) *Server {
	return &Server{search: search, score: score}
}

// Handler builds the routing table. Method-qualified patterns give 405s for
// free.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/plugins", s.handleList)
	mux.HandleFunc("GET /api/v1/plugins/{slug}", s.handlePlugin)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return logRequests(mux)
}

// ListenAndServe blocks until ctx is canceled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- s.http.ListenAndServe() }()

	log.Info("http api listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// logRequests is the request logging middleware.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
