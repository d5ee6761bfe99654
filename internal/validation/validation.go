package validation

import (
	"fmt"
	"time"

	"cripes/internal/constants"
	"cripes/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictUnknownCategory    ConflictType = "unknown_category"
	ConflictOrphanedCompletion ConflictType = "orphaned_completion"
	ConflictInvalidTemplate    ConflictType = "invalid_template"
)

// Conflict represents a detected inconsistency in the stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // names/ids involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// Validator checks stored collections for inconsistencies. Orphaned
// completions are reported but tolerated: completions reference habits
// only by id and deleted habits display with a fallback name.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks the habit collection for conflicts.
func (v *Validator) ValidateHabits(habits []models.Habit, categories []string) Result {
	result := Result{Conflicts: []Conflict{}}

	nameIDs := make(map[string][]string)
	for _, h := range habits {
		if h.Name == "" {
			continue
		}
		nameIDs[h.Name] = append(nameIDs[h.Name], h.ID)
	}
	for name, ids := range nameIDs {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				Items:       ids,
			})
		}
	}

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}

	for _, h := range habits {
		if h.ReminderTime != "" {
			if _, err := time.Parse(constants.TimeFormat, h.ReminderTime); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("Habit %q has invalid reminder time: %s", h.Name, h.ReminderTime),
					Items:       []string{h.ID},
				})
			}
		}
		if h.Category != "" && !known[h.Category] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownCategory,
				Description: fmt.Sprintf("Habit %q references unknown category %q", h.Name, h.Category),
				Items:       []string{h.ID},
			})
		}
	}

	return result
}

// ValidateCompletions reports completions whose habit no longer exists.
func (v *Validator) ValidateCompletions(completions []models.Completion, habits []models.Habit) Result {
	result := Result{Conflicts: []Conflict{}}

	byID := make(map[string]bool, len(habits))
	for _, h := range habits {
		byID[h.ID] = true
	}

	for _, c := range completions {
		if !byID[c.HabitID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanedCompletion,
				Description: fmt.Sprintf("Completion %s references deleted habit %s (%s)", c.ID, c.HabitID, c.LocalDate),
				Items:       []string{c.ID},
			})
		}
	}

	return result
}

// ValidateTemplates checks every template definition.
func (v *Validator) ValidateTemplates(templates []models.Template) Result {
	result := Result{Conflicts: []Conflict{}}

	for _, t := range templates {
		if err := t.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTemplate,
				Description: fmt.Sprintf("Template %q is invalid: %v", t.Name, err),
				Items:       []string{t.ID},
			})
		}
	}

	return result
}
