// Package calendar generates the ordered window of calendar days that
// belong to a challenge and classifies each day for display.
package calendar

import (
	"iter"

	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
)

// State classifies a challenge day for display.
type State string

const (
	// StateAchieved marks a day with an achieved record.
	StateAchieved State = "achieved"
	// StateFailed marks a reached day without an achieved record.
	StateFailed State = "failed"
	// StateNotReached marks a day the challenge has not reached yet.
	StateNotReached State = "not_reached"
)

// Day is one classified day of the challenge window. IsToday overlays the
// state rather than replacing it; IsFuture days must never be editable.
type Day struct {
	Index    int    `json:"index"` // 1-based day number within the challenge
	Date     string `json:"date"`
	State    State  `json:"state"`
	IsToday  bool   `json:"is_today"`
	IsFuture bool   `json:"is_future"`
}

// Days returns a lazy, restartable sequence of length day strings
// starting at start. Day 1 is start itself.
func Days(start string, length int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < length; i++ {
			if !yield(dateutil.AddDays(start, i)) {
				return
			}
		}
	}
}

// Build classifies the full challenge window against the record set and
// today. Precedence: an achieved record wins; a day strictly before today
// without one is failed; today and beyond are not reached until a record
// lands. Today is only an overlay, never its own state.
func Build(start string, length int, records []models.DailyRecord) []Day {
	return buildOn(start, length, records, dateutil.Today())
}

func buildOn(start string, length int, records []models.DailyRecord, today string) []Day {
	achieved := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Achieved {
			achieved[r.Date] = true
		}
	}

	days := make([]Day, 0, length)
	index := 0
	for date := range Days(start, length) {
		index++
		d := Day{
			Index:    index,
			Date:     date,
			IsToday:  date == today,
			IsFuture: date > today,
		}
		switch {
		case achieved[date]:
			d.State = StateAchieved
		case date < today:
			d.State = StateFailed
		default:
			d.State = StateNotReached
		}
		days = append(days, d)
	}
	return days
}
