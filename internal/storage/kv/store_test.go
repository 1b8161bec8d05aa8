package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/keiki-saito/habit100-app/internal/models"
	"github.com/keiki-saito/habit100-app/internal/storage"
)

func testHabit() models.Habit {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	return models.Habit{
		ID:        "habit-1",
		Name:      "read",
		StartDate: "2024-01-01",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testRecord(date string, achieved bool) models.DailyRecord {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	return models.DailyRecord{
		ID:        "rec-" + date,
		HabitID:   "habit-1",
		Date:      date,
		Achieved:  achieved,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStoreHabitRoundTrip(t *testing.T) {
	s := NewStoreWithAdapter(NewMemoryAdapter())
	h := testHabit()

	if err := s.AddHabit(h); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}

	got, err := s.GetHabit(h.ID)
	if err != nil {
		t.Fatalf("GetHabit() error = %v", err)
	}
	if got.Name != h.Name || got.StartDate != h.StartDate {
		t.Errorf("GetHabit() = %+v, want %+v", got, h)
	}

	if _, err := s.GetHabit("other"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit(other) error = %v, want ErrNotFound", err)
	}
}

func TestStoreGetAllHabitsEmpty(t *testing.T) {
	s := NewStoreWithAdapter(NewMemoryAdapter())
	habits, err := s.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits() error = %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("got %d habits from empty store, want 0", len(habits))
	}
}

func TestStoreUpdateHabitMissing(t *testing.T) {
	s := NewStoreWithAdapter(NewMemoryAdapter())
	if err := s.UpdateHabit(testHabit()); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateHabit() on empty store error = %v, want ErrNotFound", err)
	}
}

func TestStoreUpsertPreservesIdentity(t *testing.T) {
	s := NewStoreWithAdapter(NewMemoryAdapter())
	if err := s.AddHabit(testHabit()); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}

	first, err := s.UpsertRecord(testRecord("2024-01-05", true))
	if err != nil {
		t.Fatalf("first UpsertRecord() error = %v", err)
	}

	rewrite := testRecord("2024-01-05", false)
	rewrite.ID = "different-id"
	rewrite.CreatedAt = time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	second, err := s.UpsertRecord(rewrite)
	if err != nil {
		t.Fatalf("second UpsertRecord() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("upsert replaced ID: %q -> %q", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("upsert replaced CreatedAt")
	}
	if second.Achieved {
		t.Error("upsert kept stale achieved flag")
	}
}

func TestStoreRecordsSortedByDate(t *testing.T) {
	s := NewStoreWithAdapter(NewMemoryAdapter())
	for _, date := range []string{"2024-01-08", "2024-01-02", "2024-01-05"} {
		if _, err := s.UpsertRecord(testRecord(date, true)); err != nil {
			t.Fatalf("UpsertRecord(%s) error = %v", date, err)
		}
	}

	records, err := s.GetRecords("habit-1", "", "")
	if err != nil {
		t.Fatalf("GetRecords() error = %v", err)
	}
	want := []string{"2024-01-02", "2024-01-05", "2024-01-08"}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i, date := range want {
		if records[i].Date != date {
			t.Errorf("records[%d].Date = %q, want %q", i, records[i].Date, date)
		}
	}
}

func TestStoreGetRecordsBounds(t *testing.T) {
	s := NewStoreWithAdapter(NewMemoryAdapter())
	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"} {
		if _, err := s.UpsertRecord(testRecord(date, true)); err != nil {
			t.Fatalf("UpsertRecord(%s) error = %v", date, err)
		}
	}

	tests := []struct {
		name     string
		start    string
		end      string
		want     int
		wantLast string
	}{
		{"unbounded", "", "", 4, "2024-01-04"},
		{"start only", "2024-01-03", "", 2, "2024-01-04"},
		{"end only", "", "2024-01-02", 2, "2024-01-02"},
		{"both inclusive", "2024-01-02", "2024-01-03", 2, "2024-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := s.GetRecords("habit-1", tt.start, tt.end)
			if err != nil {
				t.Fatalf("GetRecords() error = %v", err)
			}
			if len(records) != tt.want {
				t.Fatalf("got %d records, want %d", len(records), tt.want)
			}
			if records[len(records)-1].Date != tt.wantLast {
				t.Errorf("last record = %q, want %q", records[len(records)-1].Date, tt.wantLast)
			}
		})
	}
}

func TestStoreDeleteHabitRemovesRecords(t *testing.T) {
	s := NewStoreWithAdapter(NewMemoryAdapter())
	h := testHabit()
	if err := s.AddHabit(h); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}
	if _, err := s.UpsertRecord(testRecord("2024-01-05", true)); err != nil {
		t.Fatalf("UpsertRecord() error = %v", err)
	}

	if err := s.DeleteHabit(h.ID); err != nil {
		t.Fatalf("DeleteHabit() error = %v", err)
	}
	if _, err := s.GetHabit(h.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() after delete error = %v, want ErrNotFound", err)
	}
	records, err := s.GetRecords(h.ID, "", "")
	if err != nil {
		t.Fatalf("GetRecords() after delete error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after delete, want 0", len(records))
	}

	if err := s.DeleteHabit(h.ID); err != nil {
		t.Errorf("second DeleteHabit() error = %v, want nil", err)
	}
}

func TestMemoryAdapterQuota(t *testing.T) {
	a := NewMemoryAdapter()
	a.MaxBytes = 8

	if err := a.Set("k", []byte("1234")); err != nil {
		t.Fatalf("Set() within quota error = %v", err)
	}
	if err := a.Set("k2", []byte("12345")); !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Errorf("Set() over quota error = %v, want ErrQuotaExceeded", err)
	}
	// Overwriting the existing key counts only the new value.
	if err := a.Set("k", []byte("12345678")); err != nil {
		t.Errorf("overwrite within quota error = %v", err)
	}
}

func TestFileAdapterPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s := NewStore(path)
	if err := s.AddHabit(testHabit()); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}
	if _, err := s.UpsertRecord(testRecord("2024-01-03", true)); err != nil {
		t.Fatalf("UpsertRecord() error = %v", err)
	}

	// A fresh store over the same file sees the data.
	reopened := NewStore(path)
	got, err := reopened.GetHabit("habit-1")
	if err != nil {
		t.Fatalf("GetHabit() after reopen error = %v", err)
	}
	if got.Name != "read" {
		t.Errorf("habit name = %q after reopen, want %q", got.Name, "read")
	}
	records, err := reopened.GetRecords("habit-1", "", "")
	if err != nil {
		t.Fatalf("GetRecords() after reopen error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records after reopen, want 1", len(records))
	}

	// No stray temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestFileAdapterClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	a := NewFileAdapter(path)

	if err := a.Set("habit", []byte(`{"id":"x"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := a.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, err := a.Get("habit"); err != nil || ok {
		t.Errorf("Get() after Clear = (ok=%v, err=%v), want absent", ok, err)
	}
	// Clearing an already-absent file is fine.
	if err := a.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}
