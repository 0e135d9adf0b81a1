// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/cognicore/textlens/pkg/textlens"
	"github.com/cognicore/textlens/pkg/textlens/cards"
	"github.com/cognicore/textlens/pkg/textlens/lexicon"
)

const (
	defaultMaxBody = 1 << 20
	defaultTimeout = 30 * time.Second
)

// Options configures a Server
type Options struct {
	Analyzer *textlens.Analyzer
	Builder  *cards.Builder
	// Lexicon enables the /v1/lexicon lookup routes when set.
	Lexicon      *lexicon.Lexicon
	Logger       logrus.FieldLogger
	MaxBodyBytes int64
	Timeout      time.Duration
}

// Server is the HTTP front end of the analyzer
type Server struct {
	analyzer *textlens.Analyzer
	builder  *cards.Builder
	lexicon  *lexicon.Lexicon
	log      logrus.FieldLogger
	maxBody  int64
	timeout  time.Duration
	router   chi.Router
}

// New creates a Server and its routes
func New(opts Options) *Server {
	s := &Server{
		analyzer: opts.Analyzer,
		builder:  opts.Builder,
		lexicon:  opts.Lexicon,
		log:      opts.Logger,
		maxBody:  opts.MaxBodyBytes,
		timeout:  opts.Timeout,
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.analyzer == nil {
		s.analyzer = textlens.New(textlens.Options{Logger: s.log})
	}
	if s.builder == nil {
		s.builder = cards.New()
	}
	if s.maxBody <= 0 {
		s.maxBody = defaultMaxBody
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Route("/analyze", func(r chi.Router) {
			r.Post("/semantic", s.handleAnalyze(cards.KindSemantic))
			r.Post("/style", s.handleAnalyze(cards.KindStyle))
			r.Post("/stats", s.handleAnalyze(cards.KindStats))
			r.Post("/all", s.handleAnalyze(cards.KindAll))
		})

		if s.lexicon != nil {
			r.Route("/lexicon", func(r chi.Router) {
				r.Get("/", s.handleLexiconStats)
				r.Get("/{word}", s.handleLexiconLookup)
			})
		}
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
