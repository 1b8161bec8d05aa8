package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/keiki-saito/habit100-app/internal/models"
)

const habitColumns = "id, name, color, start_date, created_at, updated_at"

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Color, habit.StartDate,
		habit.CreatedAt.Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339))
	return mapErr(err)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY created_at`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
		UPDATE habits SET name = ?, color = ?, start_date = ?, updated_at = ?
		WHERE id = ?`,
		habit.Name, habit.Color, habit.StartDate,
		habit.UpdatedAt.Format(time.RFC3339), habit.ID)
	if err != nil {
		return mapErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return mapErr(sql.ErrNoRows)
	}
	return nil
}

func (s *Store) DeleteHabit(id string) error {
	// ON DELETE CASCADE removes the habit's records in the same statement.
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	return mapErr(err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var createdAt, updatedAt string

	if err := row.Scan(&h.ID, &h.Name, &h.Color, &h.StartDate, &createdAt, &updatedAt); err != nil {
		return models.Habit{}, mapErr(err)
	}

	var err error
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}
