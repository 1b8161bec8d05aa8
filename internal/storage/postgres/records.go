package postgres

import (
	"github.com/keiki-saito/habit100-app/internal/models"
)

const recordColumns = "id, habit_id, date, achieved, note, created_at, updated_at"

// UpsertRecord delegates the read-modify-write for a single day to the
// database's conflict clause, so concurrent calls for the same day cannot
// lose updates.
func (s *Store) UpsertRecord(rec models.DailyRecord) (models.DailyRecord, error) {
	row := s.db.QueryRow(`
		INSERT INTO habit_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (habit_id, date) DO UPDATE SET
			achieved = excluded.achieved,
			note = excluded.note,
			updated_at = excluded.updated_at
		RETURNING `+recordColumns,
		rec.ID, rec.HabitID, rec.Date, rec.Achieved, rec.Note, rec.CreatedAt, rec.UpdatedAt)
	return scanRecord(row)
}

func (s *Store) GetRecord(habitID, date string) (models.DailyRecord, error) {
	row := s.db.QueryRow(`
		SELECT `+recordColumns+` FROM habit_records
		WHERE habit_id = $1 AND date = $2`, habitID, date)
	return scanRecord(row)
}

func (s *Store) GetRecords(habitID, startDay, endDay string) ([]models.DailyRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM habit_records WHERE habit_id = $1`
	args := []any{habitID}
	if startDay != "" {
		args = append(args, startDay)
		query += ` AND date >= $2`
	}
	if endDay != "" {
		args = append(args, endDay)
		switch len(args) {
		case 2:
			query += ` AND date <= $2`
		case 3:
			query += ` AND date <= $3`
		}
	}
	query += ` ORDER BY date ASC`

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
	_, err := s.db.Exec(`DELETE FROM habit_records WHERE habit_id = $1`, habitID)
	return mapErr(err)
}

func scanRecord(row rowScanner) (models.DailyRecord, error) {
	var r models.DailyRecord
	if err := row.Scan(&r.ID, &r.HabitID, &r.Date, &r.Achieved, &r.Note, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return models.DailyRecord{}, mapErr(err)
	}
	return r, nil
}
