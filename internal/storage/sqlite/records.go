package sqlite

import (
	"fmt"
	"time"

	"github.com/keiki-saito/habit100-app/internal/models"
)

const recordColumns = "id, habit_id, date, achieved, note, created_at, updated_at"

// UpsertRecord delegates the read-modify-write for a single day to the
// database's conflict clause, so concurrent calls for the same day cannot
// lose updates.
func (s *Store) UpsertRecord(rec models.DailyRecord) (models.DailyRecord, error) {
	achieved := 0
	if rec.Achieved {
		achieved = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO habit_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, date) DO UPDATE SET
			achieved = excluded.achieved,
			note = excluded.note,
			updated_at = excluded.updated_at`,
		rec.ID, rec.HabitID, rec.Date, achieved, rec.Note,
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return models.DailyRecord{}, mapErr(err)
	}

	return s.GetRecord(rec.HabitID, rec.Date)
}

func (s *Store) GetRecord(habitID, date string) (models.DailyRecord, error) {
	row := s.db.QueryRow(`
		SELECT `+recordColumns+` FROM habit_records
		WHERE habit_id = ? AND date = ?`, habitID, date)
	return scanRecord(row)
}

func (s *Store) GetRecords(habitID, startDay, endDay string) ([]models.DailyRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM habit_records WHERE habit_id = ?`
	args := []any{habitID}
	if startDay != "" {
		query += " AND date >= ?"
		args = append(args, startDay)
	}
	if endDay != "" {
		query += " AND date <= ?"
		args = append(args, endDay)
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	records := []models.DailyRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) DeleteRecordsByHabit(habitID string) error {
	_, err := s.db.Exec(`DELETE FROM habit_records WHERE habit_id = ?`, habitID)
	return mapErr(err)
}

func scanRecord(row rowScanner) (models.DailyRecord, error) {
	var r models.DailyRecord
	var achieved int
	var createdAt, updatedAt string

	if err := row.Scan(&r.ID, &r.HabitID, &r.Date, &achieved, &r.Note, &createdAt, &updatedAt); err != nil {
		return models.DailyRecord{}, mapErr(err)
	}
	r.Achieved = achieved == 1

	var err error
	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("failed to parse created_at for record %s: %w", r.ID, err)
	}
	r.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("failed to parse updated_at for record %s: %w", r.ID, err)
	}
	return r, nil
}
