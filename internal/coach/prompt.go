package coach

import (
	"fmt"
	"strings"

	"github.com/keiki-saito/habit100-app/internal/models"
	"github.com/keiki-saito/habit100-app/internal/stats"
)

var milestones = []int{7, 30, 50, 100}

// BuildSystemMessage produces the coaching system prompt from the current
// habit and its records. The prompt embeds the computed streak and
// achievement rate plus milestone and at-risk cues; it has no other
// coupling to the statistics engine.
func BuildSystemMessage(habit *models.Habit, records []models.DailyRecord) string {
	if habit == nil {
		return `You are an AI coach who supports habit formation.
Encourage the user and provide personalized advice for sticking with their habit.

The user has not registered a habit yet.
Encourage them to register one and start the 100-day challenge.`
	}

	streak := stats.CurrentStreak(records)
	rate := stats.AchievementRate(records, habit.StartDate)

	var trail []string
	start := len(records) - 7
	if start < 0 {
		start = 0
	}
	for _, r := range records[start:] {
		if r.Achieved {
			trail = append(trail, "o")
		} else {
			trail = append(trail, "x")
		}
	}
	recentTrail := strings.Join(trail, " ")
	if recentTrail == "" {
		recentTrail = "(no records)"
	}

	var b strings.Builder
	b.WriteString("You are an AI coach who supports habit formation.\n\n")
	b.WriteString("## Current user\n")
	fmt.Fprintf(&b, "- Habit: %s\n", habit.Name)
	fmt.Fprintf(&b, "- Start date: %s\n", habit.StartDate)
	fmt.Fprintf(&b, "- Current streak: %d consecutive days\n", streak)
	fmt.Fprintf(&b, "- Overall achievement rate: %.1f%%\n", rate)
	fmt.Fprintf(&b, "- Last 7 recorded days: %s\n", recentTrail)
	b.WriteString("\n## Your role\n")
	b.WriteString("Provide personalized advice, encouragement, and relapse-prevention support based on the user's progress.\n")
	b.WriteString("\n## Important notes\n")

	for _, m := range milestones {
		if streak == m {
			fmt.Fprintf(&b, "- Milestone reached! The user has hit %d consecutive days. Congratulate them and build momentum toward the next goal.\n", m)
		}
	}
	if atRisk(records) {
		b.WriteString("- Relapse risk: three missed days in a row. Encourage the user gently and suggest concrete steps to restart.\n")
	}
	if rate >= 80 {
		fmt.Fprintf(&b, "- The achievement rate is very high at %.1f%%. Help the user keep this pace.\n", rate)
	}
	if rate < 50 && len(records) >= 7 {
		fmt.Fprintf(&b, "- The achievement rate is %.1f%%. Keep the tone positive so the user does not give up.\n", rate)
	}

	b.WriteString("\nRespond in a friendly, encouraging tone.")
	return b.String()
}

// atRisk reports whether the last three recorded days were all missed.
func atRisk(records []models.DailyRecord) bool {
	if len(records) < 3 {
		return false
	}
	for _, r := range records[len(records)-3:] {
		if r.Achieved {
			return false
		}
	}
	return true
}
