package tracker

import (
	"time"

	"github.com/google/uuid"

	"cripes/internal/constants"
	"cripes/internal/models"
	"cripes/internal/storage"
)

// Tracker implements the completion toggle protocol. The one-completion-
// per-day invariant lives entirely in Toggle's find-then-remove-or-create
// sequence; the store itself enforces nothing.
type Tracker struct {
	db  *storage.DB
	now func() time.Time
}

func New(db *storage.DB) *Tracker {
	return &Tracker{
		db:  db,
		now: time.Now,
	}
}

// NewWithClock creates a Tracker with an injected clock, used by tests.
func NewWithClock(db *storage.DB, now func() time.Time) *Tracker {
	return &Tracker{
		db:  db,
		now: now,
	}
}

// Today returns the device-local calendar date. A habit "day" is whatever
// the device clock says; it is never UTC-normalized.
func (t *Tracker) Today() string {
	return t.now().Format(constants.DateFormat)
}

// CompletionFor returns the completion for (habitID, localDate), if any,
// regardless of its kind.
func (t *Tracker) CompletionFor(habitID, localDate string) (models.Completion, bool) {
	for _, c := range t.db.Completions() {
		if c.HabitID == habitID && c.LocalDate == localDate {
			return c, true
		}
	}
	return models.Completion{}, false
}

// CompletedOn reports whether a completion exists for (habitID, date).
func (t *Tracker) CompletedOn(habitID, date string) bool {
	_, ok := t.CompletionFor(habitID, date)
	return ok
}

// Toggle turns a user tap into a stored completion or its removal, keyed
// by (habit, local calendar date). If any completion already exists for
// today it is removed, even when its kind differs from the requested
// one: tapping "backup" while "primary" is recorded removes the primary
// record rather than switching kind. Returns the created completion, or
// false when the action toggled an existing record off.
//
// The operation is synchronous and single-shot; callers refresh their own
// cached view of the collection afterwards.
func (t *Tracker) Toggle(habitID string, kind models.CompletionKind) (models.Completion, bool, error) {
	now := t.now()
	today := now.Format(constants.DateFormat)

	if _, exists := t.CompletionFor(habitID, today); exists {
		if err := t.db.RemoveCompletion(habitID, today); err != nil {
			return models.Completion{}, false, err
		}
		return models.Completion{}, false, nil
	}

	_, offset := now.Zone()
	completion := models.Completion{
		ID:              uuid.New().String(),
		HabitID:         habitID,
		LocalDate:       today,
		Kind:            kind,
		CreatedAt:       now,
		TZOffsetMinutes: offset / 60,
	}
	if err := t.db.AddCompletion(completion); err != nil {
		return models.Completion{}, false, err
	}
	return completion, true, nil
}

// CompletionsOn returns every completion recorded for the given date.
func (t *Tracker) CompletionsOn(date string) []models.Completion {
	var out []models.Completion
	for _, c := range t.db.Completions() {
		if c.LocalDate == date {
			out = append(out, c)
		}
	}
	return out
}

// TodayRate returns today's completion count against the active habit
// count, as a percentage. Zero active habits yields zero.
func (t *Tracker) TodayRate() float64 {
	active := t.db.ActiveHabits()
	if len(active) == 0 {
		return 0
	}
	done := 0
	for _, h := range active {
		if t.CompletedOn(h.ID, t.Today()) {
			done++
		}
	}
	return float64(done) / float64(len(active)) * 100
}

// CategoryScore summarizes completion counts per category over a rolling
// window, as a percentage of one completion per habit per day.
type CategoryScore struct {
	Category    string
	Habits      int
	Completions int
	Score       float64
}

// CategorySummary computes per-category scores over the given number of
// days. Archived habits still count toward their category history.
func (t *Tracker) CategorySummary(days int) []CategoryScore {
	habits := t.db.Habits()
	completions := t.db.Completions()
	cutoff := t.now().AddDate(0, 0, -days).Format(constants.DateFormat)

	var out []CategoryScore
	for _, cat := range t.db.Categories() {
		score := CategoryScore{Category: cat}
		byID := make(map[string]bool)
		for _, h := range habits {
			if h.Category == cat {
				score.Habits++
				byID[h.ID] = true
			}
		}
		for _, c := range completions {
			if byID[c.HabitID] && c.LocalDate >= cutoff {
				score.Completions++
			}
		}
		if score.Habits > 0 {
			score.Score = float64(score.Completions) / float64(score.Habits*days) * 100
			if score.Score > 100 {
				score.Score = 100
			}
		}
		out = append(out, score)
	}
	return out
}

// Streak counts consecutive days ending today (or yesterday, when today
// is still incomplete) on which the habit has a completion.
func (t *Tracker) Streak(habitID string) int {
	done := make(map[string]bool)
	for _, c := range t.db.Completions() {
		if c.HabitID == habitID {
			done[c.LocalDate] = true
		}
	}

	day := t.now()
	if !done[day.Format(constants.DateFormat)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for done[day.Format(constants.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
