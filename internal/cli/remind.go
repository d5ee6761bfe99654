package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"cripes/internal/constants"
	"cripes/internal/logger"
	"cripes/internal/models"
	"cripes/internal/notifier"
)

type RemindCmd struct {
	Check RemindCheckCmd `cmd:"" help:"Run a single reminder check."`
	Watch RemindWatchCmd `cmd:"" help:"Poll for due reminders until interrupted."`
	Sync  RemindSyncCmd  `cmd:"" help:"Hand the active reminder set to the tray app."`
	List  RemindListCmd  `cmd:"" help:"List active reminders." default:"1"`
}

type RemindCheckCmd struct{}

func (c *RemindCheckCmd) Run(ctx *Context) error {
	due := ctx.Scheduler.Check()
	if len(due) == 0 {
		fmt.Println("No reminders due right now.")
		return nil
	}
	for _, habit := range due {
		fmt.Printf("Reminder: %s (%s)\n", habit.Name, habit.ReminderTime)
	}
	return nil
}

type RemindWatchCmd struct{}

func (c *RemindWatchCmd) Run(appCtx *Context) error {
	settings := appCtx.DB.Settings()
	if !settings.RemindersEnabled {
		return fmt.Errorf("reminders are disabled (enable with 'cripes settings set reminders true')")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tray := notifier.New()
	fire := func(habit models.Habit) {
		text := fmt.Sprintf("Time for: %s", habit.Name)
		if err := tray.Notify(text); err != nil {
			// No tray running; the terminal line is the notification.
			logger.Debug("tray notification failed", "error", err)
			fmt.Printf("🔔 %s\n", text)
		}
	}

	fmt.Printf("Watching reminders (every %s). Ctrl-C to stop.\n", constants.ReminderPollInterval)
	appCtx.Scheduler.Run(ctx, constants.ReminderPollInterval, fire)
	return nil
}

type RemindSyncCmd struct{}

func (c *RemindSyncCmd) Run(ctx *Context) error {
	snapshot := ctx.Scheduler.ActiveReminders()

	tray := notifier.New()
	if err := tray.SetReminders(snapshot); err != nil {
		return fmt.Errorf("failed to sync reminders to tray: %w", err)
	}

	fmt.Printf("Synced %d reminders to the tray app.\n", len(snapshot))
	return nil
}

type RemindListCmd struct{}

func (c *RemindListCmd) Run(ctx *Context) error {
	settings := ctx.DB.Settings()
	if !settings.RemindersEnabled {
		fmt.Println("Reminders are disabled.")
		return nil
	}

	reminders := ctx.Scheduler.ActiveReminders()
	if len(reminders) == 0 {
		fmt.Println("No reminders set.")
		return nil
	}
	for _, r := range reminders {
		fmt.Printf("%s  %s\n", r.Time, r.Name)
	}
	return nil
}
