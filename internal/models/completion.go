package models

import "time"

// CompletionKind distinguishes a full completion from a reduced-effort
// backup completion.
type CompletionKind string

const (
	CompletionPrimary CompletionKind = "primary"
	CompletionBackup  CompletionKind = "backup"
)

// Completion records that a habit was performed on a specific local
// calendar day. At most one completion exists per (HabitID, LocalDate)
// pair; the invariant is enforced by the toggle protocol in the tracker
// package, not by the store.
type Completion struct {
	ID              string         `json:"id"`
	HabitID         string         `json:"habitId"`
	LocalDate       string         `json:"localDate"` // YYYY-MM-DD, device-local
	Kind            CompletionKind `json:"completedType"`
	Note            string         `json:"note,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	TZOffsetMinutes int            `json:"tzOffsetMinutes"`
}
