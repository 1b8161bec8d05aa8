// Package stats derives streak and completion statistics from a habit's
// daily records. All functions are pure and total: malformed or empty
// input yields zero values, never an error.
//
// Two streak semantics exist side by side. CurrentStreak anchors the run
// at today and is the headline figure shown in coaching and summary
// surfaces. Challenge anchors its streak at the latest achieved record
// and is used by the fixed-length challenge panel.
package stats

import (
	"math"
	"sort"

	"github.com/keiki-saito/habit100-app/internal/constants"
	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
)

// CurrentStreak returns the number of consecutive achieved days ending at
// today. If today has no achieved record the streak is 0 regardless of
// any earlier run.
func CurrentStreak(records []models.DailyRecord) int {
	return currentStreakOn(records, dateutil.Today())
}

func currentStreakOn(records []models.DailyRecord, today string) int {
	achieved := achievedDates(records)
	if len(achieved) == 0 {
		return 0
	}

	streak := 0
	expected := today
	for achieved[expected] {
		streak++
		expected = dateutil.AddDays(expected, -1)
	}
	return streak
}

// LongestStreak returns the longest run of achieved days on exactly
// consecutive dates. Gaps reset the running count; days recorded as not
// achieved are simply absent from the run.
func LongestStreak(records []models.DailyRecord) int {
	dates := sortedAchievedDates(records)
	if len(dates) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i] == dateutil.AddDays(dates[i-1], 1) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// AchievementRate returns the percentage of achieved days over the days
// elapsed since startDate, rounded to one decimal place. When startDate
// is today the rate degenerates to 100 or 0 depending on today's record.
// The result lies in [0, 100] provided the records stay inside
// [startDate, today], which the repository enforces.
func AchievementRate(records []models.DailyRecord, startDate string) float64 {
	return achievementRateOn(records, startDate, dateutil.Today())
}

func achievementRateOn(records []models.DailyRecord, startDate, today string) float64 {
	elapsed := dateutil.DaysBetween(startDate, today)
	if elapsed <= 1 {
		if achievedDates(records)[today] {
			return 100
		}
		return 0
	}
	return round1(float64(countAchieved(records)) / float64(elapsed) * 100)
}

// RecentAchievementRate returns the achievement rate over the trailing
// windowDays calendar days ending today. The denominator is fixed at
// windowDays, so unrecorded days count as not achieved.
func RecentAchievementRate(records []models.DailyRecord, windowDays int) float64 {
	return recentAchievementRateOn(records, windowDays, dateutil.Today())
}

func recentAchievementRateOn(records []models.DailyRecord, windowDays int, today string) float64 {
	if windowDays <= 0 {
		return 0
	}
	cutoff := dateutil.AddDays(today, -windowDays+1)

	achieved := 0
	for _, r := range records {
		if r.Achieved && r.Date >= cutoff && r.Date <= today {
			achieved++
		}
	}
	return round1(float64(achieved) / float64(windowDays) * 100)
}

// Challenge summarizes progress through the fixed 100-day challenge.
// Completion rate is the count of achieved records (out of 100 days it is
// already a percentage). The streak is anchored at the latest achieved
// record and walks backward over consecutive dates, never crossing
// startDate. The longest streak resets to zero on a day explicitly
// recorded as not achieved, distinguishing a miss from a missing record.
func Challenge(records []models.DailyRecord, startDate string) models.ChallengeStats {
	completed := countAchieved(records)
	return models.ChallengeStats{
		CompletedDays:  completed,
		TotalDays:      constants.ChallengeDays,
		CompletionRate: float64(completed),
		CurrentStreak:  latestAnchoredStreak(records, startDate),
		LongestStreak:  longestStrictStreak(records),
	}
}

func latestAnchoredStreak(records []models.DailyRecord, startDate string) int {
	dates := sortedAchievedDates(records)
	if len(dates) == 0 {
		return 0
	}

	streak := 0
	expected := dates[len(dates)-1]
	for i := len(dates) - 1; i >= 0; i-- {
		if dates[i] < startDate {
			break
		}
		if dates[i] != expected {
			break
		}
		streak++
		expected = dateutil.AddDays(expected, -1)
	}
	return streak
}

func longestStrictStreak(records []models.DailyRecord) int {
	sorted := make([]models.DailyRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	longest, run := 0, 0
	lastDate := ""
	for _, r := range sorted {
		if !r.Achieved {
			run = 0
			lastDate = ""
			continue
		}
		if lastDate != "" && r.Date == dateutil.AddDays(lastDate, 1) {
			run++
		} else {
			run = 1
		}
		lastDate = r.Date
		if run > longest {
			longest = run
		}
	}
	return longest
}

func achievedDates(records []models.DailyRecord) map[string]bool {
	dates := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Achieved {
			dates[r.Date] = true
		}
	}
	return dates
}

func sortedAchievedDates(records []models.DailyRecord) []string {
	var dates []string
	for _, r := range records {
		if r.Achieved {
			dates = append(dates, r.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

func countAchieved(records []models.DailyRecord) int {
	n := 0
	for _, r := range records {
		if r.Achieved {
			n++
		}
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
