// Package preview serves an exported site over HTTP for local review.
// It only serves files; nothing is rendered per request.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const readHeaderTimeout = 5 * time.Second

// Server serves a directory of exported pages under a base path.
type Server struct {
	dir      string
	basePath string
	logger   *zap.Logger

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewServer returns a server for dir. basePath is the URL prefix the site
// was exported for; "" and "/" serve from the root.
func NewServer(dir, basePath string, logger *zap.Logger) (*Server, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("preview dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("preview dir %s is not a directory", dir)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		dir:      dir,
		basePath: "/" + strings.Trim(basePath, "/"),
		logger:   logger,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_preview_requests_total",
			Help: "Preview requests by status code and method.",
		}, []string{"code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "folio_preview_request_duration_seconds",
			Help:    "Preview request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"code", "method"}),
	}
	s.registry.MustRegister(s.requests, s.duration)
	return s, nil
}

// BasePath returns the normalized URL prefix, always starting with "/".
func (s *Server) BasePath() string { return s.basePath }

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	files := promhttp.InstrumentHandlerDuration(s.duration,
		promhttp.InstrumentHandlerCounter(s.requests, http.FileServer(http.Dir(s.dir))))

	if s.basePath == "/" {
		r.Handle("/*", files)
		return r
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, s.basePath+"/", http.StatusFound)
	})
	r.Get(s.basePath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, s.basePath+"/", http.StatusMovedPermanently)
	})
	r.Handle(s.basePath+"/*", http.StripPrefix(s.basePath, files))
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve serves on ln until ctx is done, then shuts down gracefully,
// waiting at most shutdownTimeout for open requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("base", s.basePath),
			zap.String("dir", s.dir))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("preview stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
