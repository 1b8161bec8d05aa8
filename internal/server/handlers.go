package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keiki-saito/habit100-app/internal/apperr"
	"github.com/keiki-saito/habit100-app/internal/calendar"
	"github.com/keiki-saito/habit100-app/internal/constants"
	"github.com/keiki-saito/habit100-app/internal/logger"
	"github.com/keiki-saito/habit100-app/internal/models"
	"github.com/keiki-saito/habit100-app/internal/stats"
)

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.repo.GetHabits()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var in models.CreateHabitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	habit, err := s.repo.CreateHabit(in)
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Created habit", "id", habit.ID, "name", habit.Name)
	writeJSON(w, http.StatusCreated, habit)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habit, err := s.repo.GetHabit(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateHabitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}
	in.ID = chi.URLParam(r, "id")

	habit, err := s.repo.UpdateHabit(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteHabit(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statsResponse bundles both streak semantics: the challenge panel uses
// the latest-anchored variant, the headline figures the today-anchored
// one.
type statsResponse struct {
	models.ChallengeStats
	AchievementRate       float64 `json:"achievement_rate"`
	RecentAchievementRate float64 `json:"recent_achievement_rate"`
	TodayStreak           int     `json:"today_streak"`
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	habit, err := s.repo.GetHabit(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := s.repo.GetRecords(habit.ID, "", "")
	if err != nil {
		writeError(w, err)
		return
	}

	resp := statsResponse{
		ChallengeStats:        stats.Challenge(records, habit.StartDate),
		AchievementRate:       stats.AchievementRate(records, habit.StartDate),
		RecentAchievementRate: stats.RecentAchievementRate(records, constants.RecentWindowDays),
		TodayStreak:           stats.CurrentStreak(records),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getCalendar(w http.ResponseWriter, r *http.Request) {
	habit, err := s.repo.GetHabit(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := s.repo.GetRecords(habit.ID, "", "")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calendar.Build(habit.StartDate, constants.ChallengeDays, records))
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	habitID := r.URL.Query().Get("habitId")
	if habitID == "" {
		writeError(w, apperr.Validation("habitId query parameter is required"))
		return
	}

	records, err := s.repo.GetRecords(habitID,
		r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type createRecordRequest struct {
	HabitID string `json:"habit_id"`
	models.RecordDayInput
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	rec, err := s.repo.RecordDay(req.HabitID, req.RecordDayInput)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
