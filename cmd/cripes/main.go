package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"cripes/internal/cli"
	"cripes/internal/constants"
	"cripes/internal/errors"
	"cripes/internal/logger"
	"cripes/internal/reminder"
	"cripes/internal/rewards"
	"cripes/internal/storage"
	"cripes/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .json path selects the JSON store; anything else uses SQLite." type:"path" default:"~/.config/cripes/cripes.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize cripes storage."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit     cli.HabitCmd     `cmd:"" help:"Manage habits and completions."`
	Journal   cli.JournalCmd   `cmd:"" help:"Manage journal entries and templates."`
	Reward    cli.RewardCmd    `cmd:"" help:"Manage rewards and XP."`
	Review    cli.ReviewCmd    `cmd:"" help:"Weekly review with trend analysis."`
	Remind    cli.RemindCmd    `cmd:"" help:"Manage habit reminders."`
	Category  cli.CategoryCmd  `cmd:"" help:"Manage habit categories."`
	Settings  cli.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Export    cli.ExportCmd    `cmd:"" help:"Export all data to a snapshot file."`
	Import    cli.ImportCmd    `cmd:"" help:"Import data from a snapshot file."`
	Snapshots cli.SnapshotsCmd `cmd:"" help:"List available snapshots."`
	Reset     cli.ResetCmd     `cmd:"" help:"Erase all stored data."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracking and journaling companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatalf("failed to initialize logging: %v", err)
	}

	// Select the storage backend from the path extension
	var provider storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		provider = storage.NewJSONStore(CLI.Config)
	} else {
		provider = storage.NewSQLiteStore(CLI.Config)
	}

	db := storage.NewDB(provider)
	appCtx := &cli.Context{
		DB:        db,
		Tracker:   tracker.New(db),
		Ledger:    rewards.New(db),
		Scheduler: reminder.New(db),
	}

	// Load the store before running the command (Init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := provider.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer provider.Close()

	if err := ctx.Run(appCtx); err != nil {
		provider.Close()
		errors.Fatal(err)
	}
}
