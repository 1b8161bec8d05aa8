package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/keiki-saito/habit100-app/internal/coach"
	"github.com/keiki-saito/habit100-app/internal/models"
)

type CoachCmd struct {
	Message string `arg:"" help:"Message to send to the coach."`
	Habit   string `help:"Habit name (optional when only one exists)." default:""`
}

func (c *CoachCmd) Run(ctx *Context) error {
	client, err := coach.NewClient()
	if err != nil {
		return err
	}

	habits, err := ctx.Repo.GetHabits()
	if err != nil {
		return err
	}

	// With no habit at all the coach still answers, nudging the user to
	// register one. Any other resolution failure is the user's to fix.
	var habit *models.Habit
	var records []models.DailyRecord
	if len(habits) > 0 {
		h, err := resolveHabit(ctx, c.Habit)
		if err != nil {
			return err
		}
		habit = &h
		records, err = ctx.Repo.GetRecords(h.ID, "", "")
		if err != nil {
			return err
		}
	}

	system := coach.BuildSystemMessage(habit, records)
	messages := []coach.Message{{Role: "user", Content: c.Message}}

	err = client.Stream(context.Background(), system, messages, func(delta string) error {
		_, err := fmt.Fprint(os.Stdout, delta)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Println()
	return nil
}
