package cli

import (
	"fmt"

	"github.com/keiki-saito/habit100-app/internal/dateutil"
	"github.com/keiki-saito/habit100-app/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Start a new 100-day challenge."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Update HabitUpdateCmd `cmd:"" help:"Update a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its records."`
}

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Start string `help:"Start date in YYYY-MM-DD format (default: today)." default:""`
	Color string `help:"Display color (hex)." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	start := c.Start
	if start == "" {
		start = dateutil.Today()
	}

	habit, err := ctx.Repo.CreateHabit(models.CreateHabitInput{
		Name:      c.Name,
		Color:     c.Color,
		StartDate: start,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Started challenge: %s (day 1 = %s)\n", habit.Name, habit.StartDate)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Repo.GetHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		day := dateutil.DaysSince(h.StartDate)
		fmt.Printf("%s (day %d, started %s)\n", h.Name, day, h.StartDate)
	}
	return nil
}

type HabitUpdateCmd struct {
	Habit string `help:"Habit name (optional when only one exists)." default:""`
	Name  string `help:"New habit name." default:""`
	Color string `help:"New display color." default:""`
	Start string `help:"New start date in YYYY-MM-DD format." default:""`
}

func (c *HabitUpdateCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	in := models.UpdateHabitInput{ID: habit.ID}
	if c.Name != "" {
		in.Name = &c.Name
	}
	if c.Color != "" {
		in.Color = &c.Color
	}
	if c.Start != "" {
		in.StartDate = &c.Start
	}

	updated, err := ctx.Repo.UpdateHabit(in)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `help:"Habit name (optional when only one exists)." default:""`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Repo.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %s and all of its records.\n", habit.Name)
	return nil
}
