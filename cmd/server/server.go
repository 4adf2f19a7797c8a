package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Simplici0/framequote/internal/estimate"
	"github.com/Simplici0/framequote/internal/store"
)

type server struct {
	auth     *authService
	engine   *estimate.Engine
	prices   *store.PriceTable
	projects *store.Projects
	log      logrus.FieldLogger
	now      func() time.Time

	// mu orders every read-apply-save on open projects.
	mu   sync.Mutex
	open map[string]estimate.State
}

func newServer(auth *authService, engine *estimate.Engine, prices *store.PriceTable, projects *store.Projects, log logrus.FieldLogger) *server {
	return &server{
		auth:     auth,
		engine:   engine,
		prices:   prices,
		projects: projects,
		log:      log,
		now:      time.Now,
		open:     make(map[string]estimate.State),
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/catalog", s.handleCatalog)
		r.Get("/prices", s.handlePricesList)
		r.Delete("/prices/{id}", s.handlePriceClear)

		r.Get("/projects", s.handleProjectsList)
		r.Post("/projects", s.handleProjectCreate)
		r.Route("/projects/{name}", func(r chi.Router) {
			r.Get("/", s.handleProjectGet)
			r.Delete("/", s.handleProjectDelete)
			r.Post("/load", s.handleProjectLoad)
			r.Post("/events", s.handleProjectEvents)
			r.Get("/export.{format}", s.handleProjectExport)
		})
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	email := r.FormValue("email")
	valid, err := s.auth.validateCredentials(email, r.FormValue("password"))
	if err != nil {
		s.log.WithError(err).Error("authentication error")
		writeError(w, http.StatusInternalServerError, "authentication error")
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.auth.setSessionCookie(w, email)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.auth.sessionUser(r); !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}
