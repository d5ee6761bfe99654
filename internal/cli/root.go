package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cripes/internal/backup"
	"cripes/internal/feedback"
	"cripes/internal/keyring"
	"cripes/internal/logger"
	"cripes/internal/reminder"
	"cripes/internal/rewards"
	"cripes/internal/storage"
	"cripes/internal/tracker"
)

type Context struct {
	DB        *storage.DB
	Tracker   *tracker.Tracker
	Ledger    *rewards.Ledger
	Scheduler *reminder.Scheduler
}

// PerformAutomaticSnapshot writes a snapshot before a destructive command
// and silently handles errors
func (c *Context) PerformAutomaticSnapshot() {
	data, err := backup.Export(c.DB.Provider())
	if err != nil {
		logger.Warn("Automatic snapshot failed", "error", err)
		return
	}
	mgr := backup.NewManager(c.DB.Provider().GetConfigPath())
	if _, err := mgr.WriteSnapshot(data); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic snapshot failed", "error", err)
	}
}

// FeedbackService builds the AI feedback service when settings allow it
// and an API key is configured. Returns nil when AI is unavailable; the
// caller falls back to skipping feedback entirely.
func (c *Context) FeedbackService(ctx context.Context) *feedback.Service {
	settings := c.DB.Settings()
	if !settings.AIAllowed() {
		return nil
	}
	apiKey, err := keyring.GetAPIKey()
	if err != nil {
		logger.Debug("No API key available, skipping AI feedback", "error", err)
		return nil
	}
	gen, err := feedback.NewGeminiGenerator(ctx, apiKey, feedback.DefaultModel)
	if err != nil {
		logger.Warn("Failed to create Gemini client", "error", err)
		return nil
	}
	return feedback.NewService(gen)
}

// Confirm prompts the user with a yes/no question and returns true only
// on an explicit yes.
func Confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}
