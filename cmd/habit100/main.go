package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/keiki-saito/habit100-app/internal/cli"
	"github.com/keiki-saito/habit100-app/internal/constants"
	"github.com/keiki-saito/habit100-app/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path or PostgreSQL connection string. Paths ending in .json use the single-habit file store. PostgreSQL credentials must NOT be embedded; use environment variables, .pgpass, or the OS keyring." default:"~/.config/habit100/habit100.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize habit100 storage."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits."`
	Mark     cli.MarkCmd     `cmd:"" help:"Record a day's outcome."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show challenge statistics."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show the 100-day challenge calendar."`
	Board    cli.BoardCmd    `cmd:"" help:"Open the interactive challenge board."`
	Serve    cli.ServeCmd    `cmd:"" help:"Run the HTTP API server."`
	Coach    cli.CoachCmd    `cmd:"" help:"Chat with the AI coach."`
	Secrets  cli.ConfigCmd   `cmd:"" name:"config" help:"Manage stored secrets."`
}

// logDir picks the directory logs live under. Connection strings are not
// paths, so they fall back to the default config directory.
func logDir(config string) string {
	if config == "postgres" || strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		return filepath.Dir(cli.ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(cli.ExpandPath(config))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("100-day habit challenge tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store: store,
		Repo:  cli.NewRepository(store),
	}

	// The init command handles its own setup.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
