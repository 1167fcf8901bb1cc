// Package api implements the unitpile HTTP API.
//
// The API exposes the layout pipeline and the habit store over JSON:
//   - GET  /v1/layout           solve a grid layout for a bare count
//   - CRUD /v1/habits           manage habits
//   - POST /v1/habits/{id}/units log a unit of progress
//   - GET  /v1/habits/{id}/pile  render a habit's pile (svg, png, json)
//
// Handlers are thin: validation and errors live in pkg/errors, the actual
// work in pkg/pipeline and pkg/store. Every response is JSON except rendered
// artifacts, which use their native content types.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unitpile/unitpile/pkg/pipeline"
	"github.com/unitpile/unitpile/pkg/store"
)

// Server bundles the pipeline runner and habit store behind an HTTP router.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server. A nil logger falls back to log.Default().
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes and middleware registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", s.handleListHabits)
			r.Post("/", s.handleCreateHabit)
			r.Route("/{habitID}", func(r chi.Router) {
				r.Get("/", s.handleGetHabit)
				r.Delete("/", s.handleDeleteHabit)
				r.Post("/units", s.handleLogUnit)
				r.Get("/pile", s.handleRenderPile)
			})
		})
	})

	return r
}

// requestLogger logs one line per request with method, path, status, and
// duration, tagged with the chi request ID.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		s.logger.Info("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(req.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
