// Package repository owns the lifecycle of habits and their daily
// records. It enforces every temporal and shape invariant before
// touching the injected store, and raises the most specific error kind
// at the point of detection; it never coerces invalid input into a valid
// state.
package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keiki-saito/habit100-app/internal/apperr"
	"github.com/keiki-saito/habit100-app/internal/constants"
	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
	"github.com/keiki-saito/habit100-app/internal/storage"
)

type Repository struct {
	store storage.Provider
	// singleHabit restricts the deployment to one habit at a time, the
	// key-value store variant. SQL deployments allow many.
	singleHabit bool
}

type Option func(*Repository)

// WithSingleHabit makes CreateHabit fail with a duplicate-habit error
// when a habit already exists.
func WithSingleHabit() Option {
	return func(r *Repository) { r.singleHabit = true }
}

func New(store storage.Provider, opts ...Option) *Repository {
	r := &Repository{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidateName trims and checks a habit name, returning the trimmed form.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("habit name must not be empty")
	}
	if len([]rune(name)) > constants.MaxHabitNameLen {
		return "", apperr.Validation("habit name must be at most %d characters", constants.MaxHabitNameLen)
	}
	return name, nil
}

func (r *Repository) CreateHabit(in models.CreateHabitInput) (models.Habit, error) {
	name, err := ValidateName(in.Name)
	if err != nil {
		return models.Habit{}, err
	}
	if !dateutil.Valid(in.StartDate) {
		return models.Habit{}, apperr.InvalidDate("invalid start date: %q", in.StartDate)
	}
	if in.StartDate > dateutil.Today() {
		return models.Habit{}, apperr.InvalidDate("start date must not be in the future")
	}

	if r.singleHabit {
		existing, err := r.store.GetAllHabits()
		if err != nil {
			return models.Habit{}, wrapStoreErr(err)
		}
		if len(existing) > 0 {
			return models.Habit{}, apperr.DuplicateHabit()
		}
	}

	now := time.Now()
	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     in.Color,
		StartDate: in.StartDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.store.AddHabit(habit); err != nil {
		return models.Habit{}, wrapStoreErr(err)
	}
	return habit, nil
}

func (r *Repository) UpdateHabit(in models.UpdateHabitInput) (models.Habit, error) {
	habit, err := r.store.GetHabit(in.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, apperr.Validation("habit %s does not exist", in.ID)
		}
		return models.Habit{}, wrapStoreErr(err)
	}

	if in.Name != nil {
		name, err := ValidateName(*in.Name)
		if err != nil {
			return models.Habit{}, err
		}
		habit.Name = name
	}
	if in.Color != nil {
		habit.Color = *in.Color
	}
	if in.StartDate != nil {
		if !dateutil.Valid(*in.StartDate) {
			return models.Habit{}, apperr.InvalidDate("invalid start date: %q", *in.StartDate)
		}
		if *in.StartDate > dateutil.Today() {
			return models.Habit{}, apperr.InvalidDate("start date must not be in the future")
		}
		habit.StartDate = *in.StartDate
	}
	habit.UpdatedAt = time.Now()

	if err := r.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, wrapStoreErr(err)
	}
	return habit, nil
}

// RecordDay records one day's outcome for the habit. A second write for
// the same day overwrites the existing record in place; the store keeps
// the record set ordered by ascending date.
func (r *Repository) RecordDay(habitID string, in models.RecordDayInput) (models.DailyRecord, error) {
	habit, err := r.store.GetHabit(habitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.DailyRecord{}, apperr.Validation("no habit registered")
		}
		return models.DailyRecord{}, wrapStoreErr(err)
	}

	if !dateutil.Valid(in.Date) {
		return models.DailyRecord{}, apperr.InvalidDate("invalid record date: %q", in.Date)
	}
	if in.Date > dateutil.Today() {
		return models.DailyRecord{}, apperr.InvalidDate("future dates cannot be recorded")
	}
	if in.Date < habit.StartDate {
		return models.DailyRecord{}, apperr.RecordBeforeStartDate()
	}
	if len([]rune(in.Note)) > constants.MaxNoteLen {
		return models.DailyRecord{}, apperr.Validation("note must be at most %d characters", constants.MaxNoteLen)
	}

	now := time.Now()
	rec := models.DailyRecord{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Date:      in.Date,
		Achieved:  in.Achieved,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, err := r.store.UpsertRecord(rec)
	if err != nil {
		return models.DailyRecord{}, wrapStoreErr(err)
	}
	return stored, nil
}

// DeleteHabit removes the habit and all of its records. Deleting a
// nonexistent habit is a no-op.
func (r *Repository) DeleteHabit(id string) error {
	if err := r.store.DeleteHabit(id); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

func (r *Repository) GetHabit(id string) (models.Habit, error) {
	habit, err := r.store.GetHabit(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, apperr.NotFound("habit %s not found", id)
		}
		return models.Habit{}, wrapStoreErr(err)
	}
	return habit, nil
}

func (r *Repository) GetHabits() ([]models.Habit, error) {
	habits, err := r.store.GetAllHabits()
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return habits, nil
}

func (r *Repository) GetRecords(habitID, startDay, endDay string) ([]models.DailyRecord, error) {
	records, err := r.store.GetRecords(habitID, startDay, endDay)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return records, nil
}

// wrapStoreErr maps the store's capacity sentinel to the user-facing
// quota error. Every other store failure propagates unchanged.
func wrapStoreErr(err error) error {
	if errors.Is(err, storage.ErrQuotaExceeded) {
		return apperr.StorageQuotaExceeded()
	}
	return err
}
