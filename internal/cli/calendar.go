package cli

import (
	"fmt"
	"strings"

	"github.com/keiki-saito/habit100-app/internal/calendar"
	"github.com/keiki-saito/habit100-app/internal/constants"
)

const calendarColumns = 10

type CalendarCmd struct {
	Habit string `help:"Habit name (optional when only one exists)." default:""`
}

// Run renders the 100-day challenge as a 10x10 grid. Achieved days show
// as filled cells, reached-but-missed days as crosses, unreached days
// dimmed; today is highlighted.
func (c *CalendarCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	records, err := ctx.Repo.GetRecords(habit.ID, "", "")
	if err != nil {
		return err
	}

	days := calendar.Build(habit.StartDate, constants.ChallengeDays, records)

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s — 100-day challenge", habit.Name)))
	var row strings.Builder
	for _, d := range days {
		cell := renderCell(d)
		row.WriteString(cell)
		if d.Index%calendarColumns == 0 {
			fmt.Println(row.String())
			row.Reset()
		} else {
			row.WriteString(" ")
		}
	}
	fmt.Printf("\n%s achieved   %s missed   %s not reached\n",
		achievedStyle.Render("###"), failedStyle.Render("###"), futureStyle.Render("###"))
	return nil
}

func renderCell(d calendar.Day) string {
	label := fmt.Sprintf("%3d", d.Index)

	var cell string
	switch d.State {
	case calendar.StateAchieved:
		cell = achievedStyle.Render(label)
	case calendar.StateFailed:
		cell = failedStyle.Render(label)
	default:
		cell = futureStyle.Render(label)
	}
	if d.IsToday {
		cell = todayStyle.Render(label)
	}
	return cell
}
