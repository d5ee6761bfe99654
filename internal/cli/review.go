package cli

import (
	"context"
	"fmt"
	"time"

	"cripes/internal/constants"
	"cripes/internal/feedback"
	"cripes/internal/models"
)

type ReviewCmd struct {
	Days int `help:"Number of days to review." default:"7"`
}

// Run produces a weekly review: per-category completion scores plus an
// AI trend analysis when available.
func (c *ReviewCmd) Run(ctx *Context) error {
	cutoff := time.Now().AddDate(0, 0, -c.Days).Format(constants.DateFormat)

	fmt.Printf("Review — last %d days\n\n", c.Days)

	for _, score := range ctx.Tracker.CategorySummary(c.Days) {
		if score.Habits == 0 {
			continue
		}
		fmt.Printf("%-15s %3.0f%%  (%d completions across %d habits)\n", score.Category, score.Score, score.Completions, score.Habits)
	}

	var completions []models.Completion
	for _, comp := range ctx.DB.Completions() {
		if comp.LocalDate >= cutoff {
			completions = append(completions, comp)
		}
	}
	var entries []models.Entry
	for _, e := range ctx.DB.Entries() {
		if e.LocalDate >= cutoff {
			entries = append(entries, e)
		}
	}

	fmt.Printf("\nCompletions: %d | Journal entries: %d | Balance: %d XP (level %d)\n",
		len(completions), len(entries), ctx.Ledger.Balance(), ctx.Ledger.Level())

	svc := ctx.FeedbackService(context.Background())
	if svc == nil {
		return nil
	}

	settings := ctx.DB.Settings()
	entries = feedback.FilterExcluded(entries, settings.AIExcludedTags)

	fmt.Println("\nGenerating trend analysis...")
	fmt.Println()
	fmt.Println(svc.WeeklyTrends(context.Background(), ctx.DB.ActiveHabits(), completions, entries))
	return nil
}
