// Package server exposes the habit repository over HTTP. Error kinds map
// to fixed status codes; unrecognized errors are logged and surfaced as a
// generic failure without leaking internal detail.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/keiki-saito/habit100-app/internal/apperr"
	"github.com/keiki-saito/habit100-app/internal/coach"
	"github.com/keiki-saito/habit100-app/internal/logger"
	"github.com/keiki-saito/habit100-app/internal/repository"
)

type Server struct {
	repo  *repository.Repository
	coach *coach.Client // nil when coaching is not configured
}

func New(repo *repository.Repository, coachClient *coach.Client) *Server {
	return &Server{repo: repo, coach: coachClient}
}

// Router builds the chi router with CORS and recovery middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/habits", s.listHabits)
		r.Post("/habits", s.createHabit)
		r.Route("/habits/{id}", func(r chi.Router) {
			r.Get("/", s.getHabit)
			r.Patch("/", s.updateHabit)
			r.Delete("/", s.deleteHabit)
			r.Get("/stats", s.getStats)
			r.Get("/calendar", s.getCalendar)
		})
		r.Get("/records", s.listRecords)
		r.Post("/records", s.createRecord)
		r.Post("/chat", s.chat)
	})

	return r
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps application error kinds to their status codes. Errors
// outside the taxonomy become a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var body errorBody

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body.Error.Code = string(appErr.Kind)
		body.Error.Message = appErr.Message
		writeJSON(w, appErr.StatusCode, body)
		return
	}

	logger.Error("Unhandled request error", "error", err)
	body.Error.Code = "internal_error"
	body.Error.Message = "an internal error occurred"
	writeJSON(w, http.StatusInternalServerError, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
