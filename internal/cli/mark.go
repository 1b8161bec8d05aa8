package cli

import (
	"fmt"

	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
)

type MarkCmd struct {
	Habit  string `help:"Habit name (optional when only one exists)." default:""`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Missed bool   `help:"Record the day as missed instead of achieved."`
	Note   string `help:"Optional note for this day." default:""`
}

func (c *MarkCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = dateutil.Today()
	}

	rec, err := ctx.Repo.RecordDay(habit.ID, models.RecordDayInput{
		Date:     day,
		Achieved: !c.Missed,
		Note:     c.Note,
	})
	if err != nil {
		return err
	}

	outcome := "achieved"
	if !rec.Achieved {
		outcome = "missed"
	}
	fmt.Printf("Recorded %s as %s for %s.\n", rec.Date, outcome, habit.Name)
	return nil
}
