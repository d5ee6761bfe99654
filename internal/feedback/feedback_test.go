package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"cripes/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestDailyIncludesHabitNames(t *testing.T) {
	gen := &fakeGenerator{response: "Nice work.\nNext step: rest."}
	svc := NewService(gen)

	entry := models.Entry{
		Data: map[string]json.RawMessage{"gratitude": json.RawMessage(`"sunshine"`)},
	}
	completions := []models.Completion{
		{HabitID: "h1", Kind: models.CompletionPrimary},
		{HabitID: "missing", Kind: models.CompletionBackup},
	}
	habits := []models.Habit{{ID: "h1", Name: "Morning run"}}

	got := svc.Daily(context.Background(), entry, completions, habits)
	if got != "Nice work.\nNext step: rest." {
		t.Errorf("unexpected response: %q", got)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Morning run (primary)") {
		t.Errorf("prompt should resolve habit names, got: %s", prompt)
	}
	if !strings.Contains(prompt, "Habit (backup)") {
		t.Errorf("prompt should fall back for deleted habits, got: %s", prompt)
	}
	if !strings.Contains(prompt, "sunshine") {
		t.Errorf("prompt should include entry data, got: %s", prompt)
	}
}

func TestDailyFallbackOnError(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("quota exceeded")})

	got := svc.Daily(context.Background(), models.Entry{}, nil, nil)
	if !strings.Contains(got, "Unable to generate feedback at this time.") {
		t.Errorf("expected canned daily fallback, got: %q", got)
	}
	if !strings.Contains(got, "Next step:") {
		t.Errorf("fallback must keep the Next step line, got: %q", got)
	}
}

func TestWeeklyTrendsFallbackOnError(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("network down")})

	got := svc.WeeklyTrends(context.Background(), nil, nil, nil)
	if !strings.Contains(got, "Review analysis unavailable.") {
		t.Errorf("expected canned weekly fallback, got: %q", got)
	}
}

func TestSuggestFieldsRequiresSevenEntries(t *testing.T) {
	gen := &fakeGenerator{response: "suggestions"}
	svc := NewService(gen)

	entries := make([]models.Entry, 6)
	got := svc.SuggestFields(context.Background(), models.Template{Name: "Daily"}, entries)
	if !strings.Contains(got, "at least 7 entries") {
		t.Errorf("expected not-enough-data message, got: %q", got)
	}
	if len(gen.prompts) != 0 {
		t.Error("generator must not be called with too few entries")
	}

	entries = make([]models.Entry, 7)
	got = svc.SuggestFields(context.Background(), models.Template{Name: "Daily"}, entries)
	if got != "suggestions" {
		t.Errorf("expected generator response, got: %q", got)
	}
}

func TestSuggestFieldsFallbackOnError(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("boom")})
	entries := make([]models.Entry, 7)

	got := svc.SuggestFields(context.Background(), models.Template{Name: "Daily"}, entries)
	if got != "Suggestion service unavailable." {
		t.Errorf("expected canned suggest fallback, got: %q", got)
	}
}

func TestFilterExcluded(t *testing.T) {
	entries := []models.Entry{
		{ID: "a", Tags: []string{"work"}},
		{ID: "b", Tags: []string{"private"}},
		{ID: "c", Tags: []string{"work", "private"}},
		{ID: "d"},
	}

	kept := FilterExcluded(entries, []string{"private"})
	if len(kept) != 2 {
		t.Fatalf("expected 2 entries kept, got %d", len(kept))
	}
	if kept[0].ID != "a" || kept[1].ID != "d" {
		t.Errorf("wrong entries kept: %s, %s", kept[0].ID, kept[1].ID)
	}

	// No exclusions passes everything through.
	if got := FilterExcluded(entries, nil); len(got) != 4 {
		t.Errorf("expected all entries without exclusions, got %d", len(got))
	}
}
