package models

import "time"

// Habit represents a single 100-day challenge.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	StartDate string    `json:"start_date"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailyRecord is one day's pass/fail outcome for a habit. At most one
// record exists per (habit, date) pair.
type DailyRecord struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Achieved  bool      `json:"achieved"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateHabitInput is the payload for creating a habit.
type CreateHabitInput struct {
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	StartDate string `json:"start_date"`
}

// UpdateHabitInput is the payload for updating a habit. Nil fields are
// left unchanged.
type UpdateHabitInput struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
}

// RecordDayInput is the payload for recording a day's outcome.
type RecordDayInput struct {
	Date     string `json:"date"`
	Achieved bool   `json:"achieved"`
	Note     string `json:"note,omitempty"`
}

// ChallengeStats summarizes progress through the fixed-length challenge.
type ChallengeStats struct {
	CompletedDays  int     `json:"completed_days"`
	TotalDays      int     `json:"total_days"`
	CompletionRate float64 `json:"completion_rate"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
}
