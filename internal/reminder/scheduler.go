package reminder

import (
	"context"
	"time"

	"cripes/internal/constants"
	"cripes/internal/logger"
	"cripes/internal/models"
	"cripes/internal/storage"
)

// Snapshot is the hand-off shape for the background delivery mechanism:
// one triple per active habit with a reminder time set.
type Snapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"` // HH:MM
}

// Scheduler decides, on each tick, whether any active habit's reminder
// should be surfaced right now, and never re-notifies for the same habit
// twice in the same calendar day. The dedup state is owned by the
// Scheduler instance; its lifetime is tied to whichever session started
// the poll, not to the process.
type Scheduler struct {
	db  *storage.DB
	now func() time.Time

	notified    map[string]struct{}
	lastChecked string
}

func New(db *storage.DB) *Scheduler {
	return NewWithClock(db, time.Now)
}

// NewWithClock creates a Scheduler with an injected clock, used by tests
// to simulate minute and day boundaries.
func NewWithClock(db *storage.DB, now func() time.Time) *Scheduler {
	return &Scheduler{
		db:          db,
		now:         now,
		notified:    make(map[string]struct{}),
		lastChecked: now().Format(constants.DateFormat),
	}
}

// Check runs one tick and returns the habits whose reminders should be
// surfaced now. It is idempotent within a minute: once a habit has been
// marked notified, a second call has no additional effect.
func (s *Scheduler) Check() []models.Habit {
	settings := s.db.Settings()
	if !settings.RemindersEnabled {
		return nil
	}

	now := s.now()
	today := now.Format(constants.DateFormat)
	if today != s.lastChecked {
		// Day rollover resets the dedup state.
		s.notified = make(map[string]struct{})
		s.lastChecked = today
	}

	currentMinute := now.Format(constants.TimeFormat)

	var due []models.Habit
	completions := s.db.Completions()
	for _, habit := range s.db.Habits() {
		if habit.Archived || habit.ReminderTime == "" {
			continue
		}
		if habit.ReminderTime != currentMinute {
			continue
		}
		if _, seen := s.notified[habit.ID]; seen {
			continue
		}
		if completedOn(completions, habit.ID, today) {
			// Already done today; no reminder.
			continue
		}

		s.notified[habit.ID] = struct{}{}
		due = append(due, habit)
	}
	return due
}

// Run polls on a fixed interval until ctx is cancelled, checking once
// immediately on start. Reminder latency is bounded by the interval.
// The ticker is released on every exit path.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, fire func(models.Habit)) {
	tick := func() {
		for _, habit := range s.Check() {
			logger.Info("reminder due", "habit", habit.Name, "time", habit.ReminderTime)
			fire(habit)
		}
	}

	tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

// ActiveReminders builds the snapshot handed to the background delivery
// mechanism: every non-archived habit with a reminder time. The
// collaborator matches minutes against its own copy and cannot see
// completion state, so it may notify for already-completed habits.
func (s *Scheduler) ActiveReminders() []Snapshot {
	var out []Snapshot
	for _, h := range s.db.Habits() {
		if h.Archived || h.ReminderTime == "" {
			continue
		}
		out = append(out, Snapshot{ID: h.ID, Name: h.Name, Time: h.ReminderTime})
	}
	return out
}

func completedOn(completions []models.Completion, habitID, date string) bool {
	for _, c := range completions {
		if c.HabitID == habitID && c.LocalDate == date {
			return true
		}
	}
	return false
}
