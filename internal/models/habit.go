package models

import (
	"fmt"
	"strings"
	"time"

	"cripes/internal/constants"
)

// FrequencyType represents how often a habit is expected to recur
type FrequencyType string

const (
	FrequencyDaily        FrequencyType = "daily"
	FrequencyWeekdays     FrequencyType = "weekdays"
	FrequencySpecificDays FrequencyType = "specific_days"
	FrequencyTimesPerWeek FrequencyType = "times_per_week"
	FrequencyInterval     FrequencyType = "interval"
)

// TimeOfDay tags a habit with a rough part of the day
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "Morning"
	TimeAfternoon TimeOfDay = "Afternoon"
	TimeEvening   TimeOfDay = "Evening"
	TimeAnytime   TimeOfDay = "Anytime"
)

// FrequencyRule describes a habit's recurrence. The auxiliary fields are
// only meaningful for their matching type.
type FrequencyRule struct {
	Type         FrequencyType  `json:"type"`
	DaysOfWeek   []time.Weekday `json:"daysOfWeek,omitempty"`
	TimesPerWeek int            `json:"timesPerWeek,omitempty"`
	IntervalDays int            `json:"intervalDays,omitempty"`
}

// Habit represents a recurring user-defined action with an optional
// reduced-effort ("backup") fallback variant. Archived habits are excluded
// from active lists and reminder evaluation but retained for historical
// completion lookups.
type Habit struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	BackupName   string        `json:"backupName,omitempty"`
	Category     string        `json:"category"`
	Frequency    FrequencyRule `json:"frequency"`
	TimeOfDay    TimeOfDay     `json:"timeOfDay,omitempty"`
	ReminderTime string        `json:"reminderTime,omitempty"` // HH:MM, local
	Archived     bool          `json:"archived"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (h *Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	if h.ReminderTime != "" {
		if _, err := time.Parse(constants.TimeFormat, h.ReminderTime); err != nil {
			return fmt.Errorf("invalid reminder time format (expected HH:MM): %w", err)
		}
	}

	switch h.Frequency.Type {
	case FrequencyDaily, FrequencyWeekdays:
		// no auxiliary fields
	case FrequencySpecificDays:
		if len(h.Frequency.DaysOfWeek) == 0 {
			return fmt.Errorf("days of week must be specified for specific_days frequency")
		}
	case FrequencyTimesPerWeek:
		if h.Frequency.TimesPerWeek < 1 || h.Frequency.TimesPerWeek > 7 {
			return fmt.Errorf("times per week must be between 1 and 7")
		}
	case FrequencyInterval:
		if h.Frequency.IntervalDays < 1 {
			return fmt.Errorf("interval must be at least 1 day")
		}
	default:
		return fmt.Errorf("unknown frequency type: %q", h.Frequency.Type)
	}

	return nil
}

// IsDueOn reports whether the habit's frequency rule expects it on the
// given day. Times-per-week habits are due any day; the weekly quota is a
// display concern, not a per-day gate.
func (h *Habit) IsDueOn(day time.Time) bool {
	switch h.Frequency.Type {
	case FrequencyDaily, FrequencyTimesPerWeek:
		return true
	case FrequencyWeekdays:
		wd := day.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case FrequencySpecificDays:
		for _, wd := range h.Frequency.DaysOfWeek {
			if wd == day.Weekday() {
				return true
			}
		}
		return false
	case FrequencyInterval:
		interval := h.Frequency.IntervalDays
		if interval < 1 {
			return false
		}
		// Interval habits are due on exact interval boundaries relative to
		// the day the habit was created.
		base := time.Date(h.CreatedAt.Year(), h.CreatedAt.Month(), h.CreatedAt.Day(), 0, 0, 0, 0, day.Location())
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		if date.Before(base) {
			return false
		}
		daysSince := int(date.Sub(base).Hours() / 24)
		return daysSince%interval == 0
	default:
		return false
	}
}

// FormatFrequency returns a human-readable description of the habit's
// frequency rule.
func (h *Habit) FormatFrequency() string {
	switch h.Frequency.Type {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekdays:
		return "weekdays"
	case FrequencySpecificDays:
		days := make([]string, len(h.Frequency.DaysOfWeek))
		for i, wd := range h.Frequency.DaysOfWeek {
			days[i] = wd.String()[:3]
		}
		return fmt.Sprintf("on %s", strings.Join(days, ","))
	case FrequencyTimesPerWeek:
		return fmt.Sprintf("%dx per week", h.Frequency.TimesPerWeek)
	case FrequencyInterval:
		if h.Frequency.IntervalDays == 1 {
			return "daily"
		}
		return fmt.Sprintf("every %d days", h.Frequency.IntervalDays)
	default:
		return "unknown"
	}
}
