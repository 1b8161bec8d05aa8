package storage

import (
	"errors"

	"github.com/keiki-saito/habit100-app/internal/models"
)

var (
	// ErrNotFound is returned when a habit or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrQuotaExceeded is returned when the backend rejected a write due
	// to capacity.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Provider is the persistence contract the habit repository is built on.
// Implementations: sqlite, postgres, and the file-backed key-value store.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit and cascades to its records. Deleting
	// a nonexistent habit is a no-op.
	DeleteHabit(id string) error

	// Records
	// UpsertRecord inserts the record, or, when one already exists for
	// (habit, date), overwrites achieved/note/updated_at in place keeping
	// the original identity. The returned record is the stored state.
	UpsertRecord(models.DailyRecord) (models.DailyRecord, error)
	GetRecord(habitID, date string) (models.DailyRecord, error)
	// GetRecords returns the habit's records with startDay <= date <= endDay,
	// ordered by ascending date. Empty bounds mean unbounded.
	GetRecords(habitID, startDay, endDay string) ([]models.DailyRecord, error)
	DeleteRecordsByHabit(habitID string) error

	// Utils
	GetConfigPath() string
}
