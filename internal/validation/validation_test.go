package validation

import (
	"strings"
	"testing"

	"cripes/internal/models"
)

var categories = []string{"Career", "Physical"}

func TestValidateHabitsDuplicateNames(t *testing.T) {
	v := New()
	habits := []models.Habit{
		{ID: "a", Name: "Run", Category: "Physical"},
		{ID: "b", Name: "Run", Category: "Physical"},
		{ID: "c", Name: "Read", Category: "Career"},
	}

	result := v.ValidateHabits(habits, categories)
	if !result.HasConflicts() {
		t.Fatal("expected duplicate name conflict")
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}
	if result.Conflicts[0].Type != ConflictDuplicateHabitName {
		t.Errorf("unexpected conflict type: %s", result.Conflicts[0].Type)
	}
}

func TestValidateHabitsInvalidReminderTime(t *testing.T) {
	v := New()
	habits := []models.Habit{
		{ID: "a", Name: "Run", Category: "Physical", ReminderTime: "9:99"},
	}

	result := v.ValidateHabits(habits, categories)
	if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictInvalidTime {
		t.Errorf("expected invalid time conflict, got %+v", result.Conflicts)
	}
}

func TestValidateHabitsUnknownCategory(t *testing.T) {
	v := New()
	habits := []models.Habit{
		{ID: "a", Name: "Run", Category: "Cooking"},
	}

	result := v.ValidateHabits(habits, categories)
	if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictUnknownCategory {
		t.Errorf("expected unknown category conflict, got %+v", result.Conflicts)
	}
}

func TestValidateHabitsClean(t *testing.T) {
	v := New()
	habits := []models.Habit{
		{ID: "a", Name: "Run", Category: "Physical", ReminderTime: "07:30"},
		{ID: "b", Name: "Read", Category: "Career"},
	}

	result := v.ValidateHabits(habits, categories)
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got %+v", result.Conflicts)
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("unexpected report: %q", got)
	}
}

func TestValidateCompletionsOrphans(t *testing.T) {
	v := New()
	habits := []models.Habit{{ID: "a", Name: "Run"}}
	completions := []models.Completion{
		{ID: "c1", HabitID: "a", LocalDate: "2026-09-01"},
		{ID: "c2", HabitID: "deleted", LocalDate: "2026-09-01"},
	}

	result := v.ValidateCompletions(completions, habits)
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 orphan conflict, got %d", len(result.Conflicts))
	}
	if result.Conflicts[0].Type != ConflictOrphanedCompletion {
		t.Errorf("unexpected conflict type: %s", result.Conflicts[0].Type)
	}
	if !strings.Contains(result.FormatReport(), "c2") {
		t.Errorf("report should name the orphaned completion: %s", result.FormatReport())
	}
}

func TestValidateTemplates(t *testing.T) {
	v := New()
	templates := []models.Template{
		{ID: "t1", Name: "Good", Fields: []models.Field{{ID: "f", Key: "k", Label: "K", Type: models.FieldShortText}}},
		{ID: "t2", Name: "", Fields: nil},
	}

	result := v.ValidateTemplates(templates)
	if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictInvalidTemplate {
		t.Errorf("expected one invalid template conflict, got %+v", result.Conflicts)
	}
}
