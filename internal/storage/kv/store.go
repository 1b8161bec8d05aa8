package kv

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/keiki-saito/habit100-app/internal/models"
	"github.com/keiki-saito/habit100-app/internal/storage"
)

const (
	keyHabit   = "habit"
	keyRecords = "dailyRecords"
)

// Store adapts an Adapter to the storage.Provider contract. It holds a
// single habit at a time; the repository enforces the duplicate-habit
// rule on top of it.
type Store struct {
	adapter Adapter
	path    string
}

// NewStore creates a Store over a file-backed adapter at path.
func NewStore(path string) *Store {
	return &Store{adapter: NewFileAdapter(path), path: path}
}

// NewStoreWithAdapter creates a Store over an arbitrary adapter,
// primarily for tests.
func NewStoreWithAdapter(a Adapter) *Store {
	return &Store{adapter: a}
}

func (s *Store) Init() error  { return nil }
func (s *Store) Load() error  { return nil }
func (s *Store) Close() error { return nil }

func (s *Store) GetConfigPath() string { return s.path }

func (s *Store) AddHabit(h models.Habit) error {
	return s.setJSON(keyHabit, h)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	h, ok, err := s.habit()
	if err != nil {
		return models.Habit{}, err
	}
	if !ok || h.ID != id {
		return models.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	h, ok, err := s.habit()
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Habit{}, nil
	}
	return []models.Habit{h}, nil
}

func (s *Store) UpdateHabit(h models.Habit) error {
	existing, ok, err := s.habit()
	if err != nil {
		return err
	}
	if !ok || existing.ID != h.ID {
		return storage.ErrNotFound
	}
	return s.setJSON(keyHabit, h)
}

func (s *Store) DeleteHabit(id string) error {
	h, ok, err := s.habit()
	if err != nil {
		return err
	}
	if !ok || h.ID != id {
		return nil
	}
	if err := s.adapter.Remove(keyHabit); err != nil {
		return err
	}
	return s.adapter.Remove(keyRecords)
}

func (s *Store) UpsertRecord(rec models.DailyRecord) (models.DailyRecord, error) {
	records, err := s.records()
	if err != nil {
		return models.DailyRecord{}, err
	}

	replaced := false
	for i, r := range records {
		if r.HabitID == rec.HabitID && r.Date == rec.Date {
			rec.ID = r.ID
			rec.CreatedAt = r.CreatedAt
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	if err := s.setJSON(keyRecords, records); err != nil {
		return models.DailyRecord{}, err
	}
	return rec, nil
}

func (s *Store) GetRecord(habitID, date string) (models.DailyRecord, error) {
	records, err := s.records()
	if err != nil {
		return models.DailyRecord{}, err
	}
	for _, r := range records {
		if r.HabitID == habitID && r.Date == date {
			return r, nil
		}
	}
	return models.DailyRecord{}, storage.ErrNotFound
}

func (s *Store) GetRecords(habitID, startDay, endDay string) ([]models.DailyRecord, error) {
	records, err := s.records()
	if err != nil {
		return nil, err
	}
	out := []models.DailyRecord{}
	for _, r := range records {
		if r.HabitID != habitID {
			continue
		}
		if startDay != "" && r.Date < startDay {
			continue
		}
		if endDay != "" && r.Date > endDay {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) DeleteRecordsByHabit(habitID string) error {
	records, err := s.records()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if r.HabitID != habitID {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return s.adapter.Remove(keyRecords)
	}
	return s.setJSON(keyRecords, kept)
}

func (s *Store) habit() (models.Habit, bool, error) {
	data, ok, err := s.adapter.Get(keyHabit)
	if err != nil || !ok {
		return models.Habit{}, false, err
	}
	var h models.Habit
	if err := json.Unmarshal(data, &h); err != nil {
		return models.Habit{}, false, fmt.Errorf("corrupt habit entry: %w", err)
	}
	return h, true, nil
}

func (s *Store) records() ([]models.DailyRecord, error) {
	data, ok, err := s.adapter.Get(keyRecords)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.DailyRecord{}, nil
	}
	var records []models.DailyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("corrupt records entry: %w", err)
	}
	return records, nil
}

func (s *Store) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.adapter.Set(key, data)
}
