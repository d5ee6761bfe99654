package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cripes/internal/logger"
	"cripes/internal/models"
)

// SystemPrompt shapes every supportive-text request.
const SystemPrompt = `You are the CRIPES Habits & Journal assistant.
Output must be plain text, no Markdown.
Short lines, 3 bullet style lines using hyphen prefix only.
Always include a single "Next step" line at the end.
Tone: Supportive, curious, practical.
Avoid medical or diagnostic language.`

// Canned fallback strings. An AI failure is never surfaced as an error;
// the caller gets one of these instead.
const (
	dailyFallback = "Unable to generate feedback at this time.\n- Keep up the good work\n- Focus on consistency\n- Take it one day at a time\nNext step: Try again tomorrow."

	weeklyFallback = "Review analysis unavailable.\n- Review your data manually\n- Look for patterns in missed habits\n- Celebrate small wins\nNext step: Set one focus for next week."

	suggestFallback = "Suggestion service unavailable."
)

// Generator produces supportive text from an assembled prompt. The
// Gemini client implements it; tests substitute their own.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Service assembles context for the text collaborator and substitutes
// canned fallbacks on any failure.
type Service struct {
	gen Generator
}

func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Daily produces supportive feedback for a journal entry, given today's
// completions and the habit directory for name resolution.
func (s *Service) Daily(ctx context.Context, entry models.Entry, completions []models.Completion, habits []models.Habit) string {
	names := make(map[string]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}

	var done []string
	for _, c := range completions {
		name := names[c.HabitID]
		if name == "" {
			name = "Habit"
		}
		done = append(done, fmt.Sprintf("%s (%s)", name, c.Kind))
	}

	content, err := json.Marshal(entry.Data)
	if err != nil {
		content = []byte("{}")
	}

	prompt := fmt.Sprintf(`Based on today's entry: %s
And these habits completed: %s
Give me supportive daily feedback following the system rules.`, content, strings.Join(done, ", "))

	text, err := s.gen.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		logger.Warn("daily feedback generation failed", "error", err)
		return dailyFallback
	}
	return text
}

// WeeklyTrends analyzes recent habit and journal activity.
func (s *Service) WeeklyTrends(ctx context.Context, habits []models.Habit, completions []models.Completion, entries []models.Entry) string {
	var tags []string
	for _, e := range entries {
		tags = append(tags, e.Tags...)
	}

	prompt := fmt.Sprintf(`Weekly Review Data:
Habits defined: %d
Completions this week: %d
Journal entries: %d
Common entry tags: %s

Analyze the trends and provide feedback.`, len(habits), len(completions), len(entries), strings.Join(tags, ", "))

	text, err := s.gen.Generate(ctx, SystemPrompt, prompt)
	if err != nil {
		logger.Warn("weekly trend analysis failed", "error", err)
		return weeklyFallback
	}
	return text
}

// SuggestFields asks for template field suggestions based on past
// entries of the template. At least seven entries are required before a
// request is worth making.
func (s *Service) SuggestFields(ctx context.Context, template models.Template, entries []models.Entry) string {
	if len(entries) < 7 {
		return "Not enough data yet, create at least 7 entries for this template."
	}

	datas := make([]map[string]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		datas = append(datas, e.Data)
	}
	existing, err := json.Marshal(datas)
	if err != nil {
		existing = []byte("[]")
	}

	prompt := fmt.Sprintf(`Analyze the last %d entries for template "%s".
Suggest new fields to improve self-reflection based on the existing content: %s

Part 1: 5-8 lines explaining why these fields help.
===JSON===
Part 2: JSON only, array of journal field objects (id is placeholder).`, len(entries), template.Name, existing)

	text, err := s.gen.Generate(ctx, "You are a specialized template builder. Follow the specific output format.", prompt)
	if err != nil {
		logger.Warn("field suggestion failed", "error", err)
		return suggestFallback
	}
	return text
}

// FilterExcluded drops entries carrying any of the excluded tags, so
// private entries never reach the text collaborator.
func FilterExcluded(entries []models.Entry, excludedTags []string) []models.Entry {
	if len(excludedTags) == 0 {
		return entries
	}
	var kept []models.Entry
	for _, e := range entries {
		excluded := false
		for _, tag := range excludedTags {
			if e.HasTag(tag) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, e)
		}
	}
	return kept
}
