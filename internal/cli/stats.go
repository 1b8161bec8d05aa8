package cli

import (
	"fmt"

	"github.com/keiki-saito/habit100-app/internal/constants"
	"github.com/keiki-saito/habit100-app/internal/stats"
)

type StatsCmd struct {
	Habit string `help:"Habit name (optional when only one exists)." default:""`
}

func (c *StatsCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	records, err := ctx.Repo.GetRecords(habit.ID, "", "")
	if err != nil {
		return err
	}

	challenge := stats.Challenge(records, habit.StartDate)

	fmt.Println(titleStyle.Render(habit.Name))
	fmt.Printf("%s %d / %d days\n", labelStyle.Render("Completed:"), challenge.CompletedDays, challenge.TotalDays)
	fmt.Printf("%s %.0f%%\n", labelStyle.Render("Completion rate:"), challenge.CompletionRate)
	fmt.Printf("%s %d days\n", labelStyle.Render("Current streak:"), challenge.CurrentStreak)
	fmt.Printf("%s %d days\n", labelStyle.Render("Longest streak:"), challenge.LongestStreak)
	fmt.Printf("%s %d days (ending today)\n", labelStyle.Render("Today-anchored streak:"), stats.CurrentStreak(records))
	fmt.Printf("%s %.1f%%\n", labelStyle.Render("Achievement rate:"), stats.AchievementRate(records, habit.StartDate))
	fmt.Printf("%s %.1f%%\n", labelStyle.Render(fmt.Sprintf("Last %d days:", constants.RecentWindowDays)),
		stats.RecentAchievementRate(records, constants.RecentWindowDays))
	return nil
}
