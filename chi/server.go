// Package chi serves the annotated-text renderer and the comparison
// projector over HTTP using the chi router.
package chi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/redline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Server defaults.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultMaxRequestBytes = 1 << 20
	DefaultRequestTimeout  = 30 * time.Second
	ReadHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 10 * time.Second
)

// Server is the redline HTTP API. It holds no per-request state; every
// request carries the text and annotation set it operates on.
type Server struct {
	server   *http.Server
	router   chi.Router
	validate *validator.Validate
	logger   zerolog.Logger

	analyzer        redline.Analyzer
	aligner         redline.Aligner
	differ          redline.WordDiffer
	maxRequestBytes int64
	requestTimeout  time.Duration
	allowedOrigins  []string
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.server.Addr = addr
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithAnalyzer enables POST /v1/reviews.
func WithAnalyzer(a redline.Analyzer) Option {
	return func(s *Server) {
		s.analyzer = a
	}
}

// WithAligner lets POST /v1/comparisons align two documents itself.
func WithAligner(a redline.Aligner) Option {
	return func(s *Server) {
		s.aligner = a
	}
}

// WithWordDiffer sets the word differ used for comparison rows.
func WithWordDiffer(d redline.WordDiffer) Option {
	return func(s *Server) {
		s.differ = d
	}
}

// WithMaxRequestBytes limits request bodies.
func WithMaxRequestBytes(n int64) Option {
	return func(s *Server) {
		s.maxRequestBytes = n
	}
}

// WithRequestTimeout bounds the time spent on one request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// NewServer returns a Server with routes mounted.
func NewServer(opts ...Option) *Server {
	s := &Server{
		server: &http.Server{
			Addr:              DefaultAddr,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		validate:        validator.New(),
		logger:          zerolog.Nop(),
		maxRequestBytes: DefaultMaxRequestBytes,
		requestTimeout:  DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	s.server.Handler = s.router
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
	r.Use(middleware.Heartbeat("/healthz"))
	if len(s.allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(middleware.RequestSize(s.maxRequestBytes))
		r.Use(middleware.Timeout(s.requestTimeout))

		r.Post("/segments", s.handleSegments)
		r.Route("/annotations", func(r chi.Router) {
			r.Post("/accept", s.handleRemove(redline.ActionAccepted))
			r.Post("/dismiss", s.handleRemove(redline.ActionDismissed))
		})
		r.Post("/reviews", s.handleReview)
		r.Post("/comparisons", s.handleComparison)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.server.Addr).Msg("listening")
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info().Msg("server stopped")
	return nil
}
