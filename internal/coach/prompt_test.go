package coach

import (
	"strings"
	"testing"

	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
)

func rec(date string, achieved bool) models.DailyRecord {
	return models.DailyRecord{HabitID: "h1", Date: date, Achieved: achieved}
}

func TestBuildSystemMessageNoHabit(t *testing.T) {
	msg := BuildSystemMessage(nil, nil)
	if !strings.Contains(msg, "has not registered a habit") {
		t.Errorf("no-habit prompt missing registration nudge:\n%s", msg)
	}
	if !strings.Contains(msg, "100-day challenge") {
		t.Errorf("no-habit prompt missing challenge mention:\n%s", msg)
	}
}

func TestBuildSystemMessageEmbedsHabit(t *testing.T) {
	habit := &models.Habit{Name: "evening walk", StartDate: dateutil.AddDays(dateutil.Today(), -3)}
	msg := BuildSystemMessage(habit, nil)

	for _, want := range []string{
		"- Habit: evening walk",
		"- Start date: " + habit.StartDate,
		"(no records)",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildSystemMessageTrail(t *testing.T) {
	today := dateutil.Today()
	habit := &models.Habit{Name: "walk", StartDate: dateutil.AddDays(today, -9)}

	// Ten records so only the last seven appear in the trail.
	var records []models.DailyRecord
	for offset := -9; offset <= 0; offset++ {
		records = append(records, rec(dateutil.AddDays(today, offset), offset%2 == 0))
	}

	msg := BuildSystemMessage(habit, records)
	const label = "Last 7 recorded days: "
	idx := strings.Index(msg, label)
	if idx < 0 {
		t.Fatalf("prompt missing trail line:\n%s", msg)
	}
	trail := msg[idx+len(label):]
	trail = trail[:strings.Index(trail, "\n")]

	symbols := strings.Fields(trail)
	if len(symbols) != 7 {
		t.Fatalf("trail has %d symbols, want 7: %q", len(symbols), trail)
	}
	for _, s := range symbols {
		if s != "o" && s != "x" {
			t.Errorf("unexpected trail symbol %q in %q", s, trail)
		}
	}
	// Records run o x o x ... for even offsets; the last day (offset 0)
	// is achieved.
	if symbols[6] != "o" {
		t.Errorf("last trail symbol = %q, want o", symbols[6])
	}
}

func TestBuildSystemMessageMilestone(t *testing.T) {
	today := dateutil.Today()
	habit := &models.Habit{Name: "walk", StartDate: dateutil.AddDays(today, -6)}

	var records []models.DailyRecord
	for offset := -6; offset <= 0; offset++ {
		records = append(records, rec(dateutil.AddDays(today, offset), true))
	}

	msg := BuildSystemMessage(habit, records)
	if !strings.Contains(msg, "Milestone reached!") {
		t.Errorf("7-day streak prompt missing milestone cue:\n%s", msg)
	}
	if !strings.Contains(msg, "very high") {
		t.Errorf("100%% rate prompt missing high-rate cue:\n%s", msg)
	}
}

func TestBuildSystemMessageAtRisk(t *testing.T) {
	today := dateutil.Today()
	habit := &models.Habit{Name: "walk", StartDate: dateutil.AddDays(today, -30)}

	records := []models.DailyRecord{
		rec(dateutil.AddDays(today, -3), true),
		rec(dateutil.AddDays(today, -2), false),
		rec(dateutil.AddDays(today, -1), false),
		rec(today, false),
	}

	msg := BuildSystemMessage(habit, records)
	if !strings.Contains(msg, "Relapse risk") {
		t.Errorf("three-miss prompt missing relapse cue:\n%s", msg)
	}
}

func TestAtRisk(t *testing.T) {
	tests := []struct {
		name  string
		flags []bool
		want  bool
	}{
		{"too few records", []bool{false, false}, false},
		{"three misses", []bool{true, false, false, false}, true},
		{"recent success", []bool{false, false, true}, false},
		{"all achieved", []bool{true, true, true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []models.DailyRecord
			for i, f := range tt.flags {
				records = append(records, rec(dateutil.AddDays("2024-01-01", i), f))
			}
			if got := atRisk(records); got != tt.want {
				t.Errorf("atRisk() = %v, want %v", got, tt.want)
			}
		})
	}
}
