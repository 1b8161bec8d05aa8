package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/keiki-saito/habit100-app/internal/apperr"
	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
	"github.com/keiki-saito/habit100-app/internal/storage/kv"
)

func newTestRepo(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	return New(kv.NewStoreWithAdapter(kv.NewMemoryAdapter()), opts...)
}

func mustCreateHabit(t *testing.T, repo *Repository, startDate string) models.Habit {
	t.Helper()
	habit, err := repo.CreateHabit(models.CreateHabitInput{
		Name:      "morning run",
		StartDate: startDate,
	})
	if err != nil {
		t.Fatalf("CreateHabit() error = %v", err)
	}
	return habit
}

func TestCreateHabitValidation(t *testing.T) {
	today := dateutil.Today()

	tests := []struct {
		name     string
		input    models.CreateHabitInput
		wantKind apperr.Kind
	}{
		{
			name:     "empty name",
			input:    models.CreateHabitInput{Name: "", StartDate: today},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "whitespace only name",
			input:    models.CreateHabitInput{Name: "   ", StartDate: today},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "name of 101 characters",
			input:    models.CreateHabitInput{Name: strings.Repeat("a", 101), StartDate: today},
			wantKind: apperr.KindValidation,
		},
		{
			name:     "malformed start date",
			input:    models.CreateHabitInput{Name: "run", StartDate: "2024/01/01"},
			wantKind: apperr.KindInvalidDate,
		},
		{
			name:     "start date tomorrow",
			input:    models.CreateHabitInput{Name: "run", StartDate: dateutil.AddDays(today, 1)},
			wantKind: apperr.KindInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			_, err := repo.CreateHabit(tt.input)
			if apperr.KindOf(err) != tt.wantKind {
				t.Errorf("CreateHabit() error kind = %q, want %q (err: %v)", apperr.KindOf(err), tt.wantKind, err)
			}
		})
	}
}

func TestCreateHabitTrimsAndStamps(t *testing.T) {
	repo := newTestRepo(t)
	habit, err := repo.CreateHabit(models.CreateHabitInput{
		Name:      "  morning run  ",
		StartDate: dateutil.Today(),
	})
	if err != nil {
		t.Fatalf("CreateHabit() error = %v", err)
	}
	if habit.Name != "morning run" {
		t.Errorf("Name = %q, want trimmed", habit.Name)
	}
	if habit.ID == "" {
		t.Error("ID not assigned")
	}
	if habit.CreatedAt.IsZero() || !habit.CreatedAt.Equal(habit.UpdatedAt) {
		t.Error("creation timestamps not set to the same instant")
	}
}

func TestCreateHabitBoundaryName(t *testing.T) {
	repo := newTestRepo(t)
	name := strings.Repeat("x", 100)
	habit, err := repo.CreateHabit(models.CreateHabitInput{Name: name, StartDate: dateutil.Today()})
	if err != nil {
		t.Fatalf("CreateHabit() with 100-char name error = %v", err)
	}
	if habit.Name != name {
		t.Errorf("Name = %q, want unchanged 100-char name", habit.Name)
	}
}

func TestCreateHabitSingleHabitMode(t *testing.T) {
	repo := newTestRepo(t, WithSingleHabit())
	mustCreateHabit(t, repo, dateutil.Today())

	_, err := repo.CreateHabit(models.CreateHabitInput{Name: "second", StartDate: dateutil.Today()})
	if apperr.KindOf(err) != apperr.KindDuplicateHabit {
		t.Errorf("second CreateHabit() error kind = %q, want %q", apperr.KindOf(err), apperr.KindDuplicateHabit)
	}
}

func TestUpdateHabit(t *testing.T) {
	repo := newTestRepo(t)
	habit := mustCreateHabit(t, repo, dateutil.AddDays(dateutil.Today(), -3))

	t.Run("missing habit", func(t *testing.T) {
		name := "x"
		_, err := repo.UpdateHabit(models.UpdateHabitInput{ID: "nope", Name: &name})
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("error kind = %q, want validation", apperr.KindOf(err))
		}
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		color := "#ff0000"
		updated, err := repo.UpdateHabit(models.UpdateHabitInput{ID: habit.ID, Color: &color})
		if err != nil {
			t.Fatalf("UpdateHabit() error = %v", err)
		}
		if updated.Name != habit.Name {
			t.Errorf("Name changed to %q", updated.Name)
		}
		if updated.Color != color {
			t.Errorf("Color = %q, want %q", updated.Color, color)
		}
		if updated.StartDate != habit.StartDate {
			t.Errorf("StartDate changed to %q", updated.StartDate)
		}
		if !updated.UpdatedAt.After(habit.UpdatedAt) && !updated.UpdatedAt.Equal(habit.UpdatedAt) {
			t.Error("UpdatedAt not refreshed")
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		empty := "  "
		_, err := repo.UpdateHabit(models.UpdateHabitInput{ID: habit.ID, Name: &empty})
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("error kind = %q, want validation", apperr.KindOf(err))
		}
	})

	t.Run("overlong name rejected", func(t *testing.T) {
		long := strings.Repeat("a", 101)
		_, err := repo.UpdateHabit(models.UpdateHabitInput{ID: habit.ID, Name: &long})
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("error kind = %q, want validation", apperr.KindOf(err))
		}
	})
}

func TestRecordDayValidation(t *testing.T) {
	today := dateutil.Today()
	start := dateutil.AddDays(today, -5)

	tests := []struct {
		name     string
		input    models.RecordDayInput
		wantKind apperr.Kind
	}{
		{
			name:     "malformed date",
			input:    models.RecordDayInput{Date: "bogus", Achieved: true},
			wantKind: apperr.KindInvalidDate,
		},
		{
			name:     "future date",
			input:    models.RecordDayInput{Date: dateutil.AddDays(today, 1), Achieved: true},
			wantKind: apperr.KindInvalidDate,
		},
		{
			name:     "before start date",
			input:    models.RecordDayInput{Date: dateutil.AddDays(start, -1), Achieved: true},
			wantKind: apperr.KindRecordBeforeStartDate,
		},
		{
			name:     "note over 500 characters",
			input:    models.RecordDayInput{Date: today, Achieved: true, Note: strings.Repeat("n", 501)},
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			habit := mustCreateHabit(t, repo, start)
			_, err := repo.RecordDay(habit.ID, tt.input)
			if apperr.KindOf(err) != tt.wantKind {
				t.Errorf("RecordDay() error kind = %q, want %q (err: %v)", apperr.KindOf(err), tt.wantKind, err)
			}
		})
	}
}

func TestRecordDayWithoutHabit(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.RecordDay("nope", models.RecordDayInput{Date: dateutil.Today(), Achieved: true})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("error kind = %q, want validation", apperr.KindOf(err))
	}
}

func TestRecordDayUpsert(t *testing.T) {
	repo := newTestRepo(t)
	today := dateutil.Today()
	habit := mustCreateHabit(t, repo, dateutil.AddDays(today, -2))

	first, err := repo.RecordDay(habit.ID, models.RecordDayInput{Date: today, Achieved: true, Note: "felt great"})
	if err != nil {
		t.Fatalf("first RecordDay() error = %v", err)
	}

	second, err := repo.RecordDay(habit.ID, models.RecordDayInput{Date: today, Achieved: false})
	if err != nil {
		t.Fatalf("second RecordDay() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("upsert changed identity: %q -> %q", first.ID, second.ID)
	}
	if second.Achieved {
		t.Error("upsert did not overwrite achieved flag")
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Error("upsert changed CreatedAt")
	}

	records, err := repo.GetRecords(habit.ID, "", "")
	if err != nil {
		t.Fatalf("GetRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records after double write, want 1", len(records))
	}
}

func TestRecordDaySortedAscending(t *testing.T) {
	repo := newTestRepo(t)
	today := dateutil.Today()
	habit := mustCreateHabit(t, repo, dateutil.AddDays(today, -9))

	// Write out of order.
	for _, offset := range []int{0, -4, -2, -9, -1} {
		if _, err := repo.RecordDay(habit.ID, models.RecordDayInput{
			Date:     dateutil.AddDays(today, offset),
			Achieved: true,
		}); err != nil {
			t.Fatalf("RecordDay() error = %v", err)
		}
	}

	records, err := repo.GetRecords(habit.ID, "", "")
	if err != nil {
		t.Fatalf("GetRecords() error = %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].Date >= records[i].Date {
			t.Errorf("records out of order: %q before %q", records[i-1].Date, records[i].Date)
		}
	}
}

func TestGetRecordsRange(t *testing.T) {
	repo := newTestRepo(t)
	today := dateutil.Today()
	habit := mustCreateHabit(t, repo, dateutil.AddDays(today, -9))

	for offset := -9; offset <= 0; offset++ {
		if _, err := repo.RecordDay(habit.ID, models.RecordDayInput{
			Date:     dateutil.AddDays(today, offset),
			Achieved: true,
		}); err != nil {
			t.Fatalf("RecordDay() error = %v", err)
		}
	}

	start := dateutil.AddDays(today, -5)
	end := dateutil.AddDays(today, -2)
	records, err := repo.GetRecords(habit.ID, start, end)
	if err != nil {
		t.Fatalf("GetRecords() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records in range, want 4", len(records))
	}
	if records[0].Date != start || records[len(records)-1].Date != end {
		t.Errorf("range bounds = [%q, %q], want [%q, %q]",
			records[0].Date, records[len(records)-1].Date, start, end)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	repo := newTestRepo(t)
	today := dateutil.Today()
	habit := mustCreateHabit(t, repo, dateutil.AddDays(today, -1))

	if _, err := repo.RecordDay(habit.ID, models.RecordDayInput{Date: today, Achieved: true}); err != nil {
		t.Fatalf("RecordDay() error = %v", err)
	}

	if err := repo.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("DeleteHabit() error = %v", err)
	}

	if _, err := repo.GetHabit(habit.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("GetHabit() after delete error kind = %q, want not found", apperr.KindOf(err))
	}
	records, err := repo.GetRecords(habit.ID, "", "")
	if err != nil {
		t.Fatalf("GetRecords() after delete error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after cascade delete, want 0", len(records))
	}

	// Idempotent: deleting again is a no-op.
	if err := repo.DeleteHabit(habit.ID); err != nil {
		t.Errorf("second DeleteHabit() error = %v, want nil", err)
	}
}

func TestQuotaExceededSurfaces(t *testing.T) {
	adapter := kv.NewMemoryAdapter()
	adapter.MaxBytes = 1 // any write overflows
	repo := New(kv.NewStoreWithAdapter(adapter), WithSingleHabit())

	_, err := repo.CreateHabit(models.CreateHabitInput{Name: "run", StartDate: dateutil.Today()})
	if apperr.KindOf(err) != apperr.KindStorageQuotaExceeded {
		t.Errorf("error kind = %q, want storage quota exceeded (err: %v)", apperr.KindOf(err), err)
	}
}

func TestUnknownStoreErrorsPropagate(t *testing.T) {
	adapter := &failingAdapter{err: errors.New("disk on fire")}
	repo := New(kv.NewStoreWithAdapter(adapter))

	_, err := repo.GetHabits()
	if err == nil || apperr.KindOf(err) != "" {
		t.Errorf("unknown store error was masked: %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("store error rewritten: %v", err)
	}
}

type failingAdapter struct {
	err error
}

func (a *failingAdapter) Get(string) ([]byte, bool, error) { return nil, false, a.err }
func (a *failingAdapter) Set(string, []byte) error         { return a.err }
func (a *failingAdapter) Remove(string) error              { return a.err }
func (a *failingAdapter) Clear() error                     { return a.err }
