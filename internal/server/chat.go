package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/keiki-saito/habit100-app/internal/apperr"
	"github.com/keiki-saito/habit100-app/internal/coach"
	"github.com/keiki-saito/habit100-app/internal/logger"
	"github.com/keiki-saito/habit100-app/internal/models"
)

type chatRequest struct {
	HabitID  string          `json:"habit_id,omitempty"`
	Messages []coach.Message `json:"messages"`
}

// chat streams the coaching reply as plain chunked text. The system
// prompt embeds the habit's computed statistics when a habit is given.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	if s.coach == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "coaching is not configured",
		})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, apperr.Validation("messages must not be empty"))
		return
	}

	var habit *models.Habit
	var records []models.DailyRecord
	if req.HabitID != "" {
		h, err := s.repo.GetHabit(req.HabitID)
		if err != nil {
			writeError(w, err)
			return
		}
		habit = &h
		records, err = s.repo.GetRecords(h.ID, "", "")
		if err != nil {
			writeError(w, err)
			return
		}
	}

	system := coach.BuildSystemMessage(habit, records)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	flusher, _ := w.(http.Flusher)

	err := s.coach.Stream(r.Context(), system, req.Messages, func(delta string) error {
		if _, err := w.Write([]byte(delta)); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil && !errors.Is(err, r.Context().Err()) {
		// Headers are already sent; the disconnect is all we can log.
		logger.Error("Coaching stream aborted", "error", err)
	}
}
