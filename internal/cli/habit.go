package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cripes/internal/constants"
	"cripes/internal/models"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit an existing habit."`
	Done    HabitDoneCmd    `cmd:"" help:"Toggle a habit's completion for today."`
	Today   HabitTodayCmd   `cmd:"" help:"Show today's habit status."`
	Log     HabitLogCmd     `cmd:"" help:"Show habit log (ASCII history)."`
	History HabitHistoryCmd `cmd:"" help:"List a habit's completion records."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit permanently."`
}

// findHabitByName resolves a habit by exact name match.
func findHabitByName(ctx *Context, name string) (models.Habit, error) {
	for _, h := range ctx.DB.Habits() {
		if h.Name == name {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", name)
}

// buildFrequency assembles a frequency rule from command flags.
func buildFrequency(freq, days string, times, interval int) (models.FrequencyRule, error) {
	rule := models.FrequencyRule{Type: models.FrequencyType(freq)}
	switch rule.Type {
	case models.FrequencyDaily, models.FrequencyWeekdays:
	case models.FrequencySpecificDays:
		if days == "" {
			return rule, fmt.Errorf("--days is required for specific_days frequency")
		}
		weekdays, err := ParseWeekdays(days)
		if err != nil {
			return rule, err
		}
		rule.DaysOfWeek = weekdays
	case models.FrequencyTimesPerWeek:
		rule.TimesPerWeek = times
	case models.FrequencyInterval:
		rule.IntervalDays = interval
	default:
		return rule, fmt.Errorf("unknown frequency type: %q (expected daily, weekdays, specific_days, times_per_week, or interval)", freq)
	}
	return rule, nil
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Backup    string `help:"Reduced-effort backup variant name." default:""`
	Category  string `help:"Habit category." default:"Physical"`
	Frequency string `help:"Frequency type: daily, weekdays, specific_days, times_per_week, interval." default:"daily"`
	Days      string `help:"Comma-separated weekdays (for specific_days)." default:""`
	Times     int    `help:"Times per week (for times_per_week)." default:"3"`
	Interval  int    `help:"Interval in days (for interval)." default:"2"`
	TimeOfDay string `help:"Time of day: Morning, Afternoon, Evening, Anytime." default:"Anytime"`
	Remind    string `help:"Reminder time in HH:MM (local)." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	// Check if habit with same name already exists
	if _, err := findHabitByName(ctx, c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	frequency, err := buildFrequency(c.Frequency, c.Days, c.Times, c.Interval)
	if err != nil {
		return err
	}

	now := time.Now()
	habit := models.Habit{
		ID:           uuid.New().String(),
		Name:         c.Name,
		BackupName:   c.Backup,
		Category:     c.Category,
		Frequency:    frequency,
		TimeOfDay:    models.TimeOfDay(c.TimeOfDay),
		ReminderTime: c.Remind,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := habit.Validate(); err != nil {
		return err
	}

	if err := ctx.DB.SaveHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", c.Name, habit.FormatFrequency())
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.DB.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		if habit.Archived && !c.Archived {
			continue
		}
		status := ""
		if habit.Archived {
			status = " [ARCHIVED]"
		}
		remind := ""
		if habit.ReminderTime != "" {
			remind = fmt.Sprintf(", remind %s", habit.ReminderTime)
		}
		streak := ctx.Tracker.Streak(habit.ID)
		streakStr := ""
		if streak > 0 {
			streakStr = fmt.Sprintf("  (streak: %d)", streak)
		}
		fmt.Printf("%s%s — %s, %s%s%s\n", habit.Name, status, habit.Category, habit.FormatFrequency(), remind, streakStr)
	}

	return nil
}

type HabitEditCmd struct {
	Name      string `arg:"" help:"Habit name to edit."`
	Rename    string `help:"New habit name." default:""`
	Backup    string `help:"New backup variant name." default:""`
	Category  string `help:"New category." default:""`
	Frequency string `help:"New frequency type." default:""`
	Days      string `help:"Comma-separated weekdays (for specific_days)." default:""`
	Times     int    `help:"Times per week (for times_per_week)." default:"0"`
	Interval  int    `help:"Interval in days (for interval)." default:"0"`
	TimeOfDay string `help:"New time of day." default:""`
	Remind    string `help:"New reminder time in HH:MM, or 'off' to clear." default:""`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name)
	if err != nil {
		return err
	}

	if c.Rename != "" {
		habit.Name = c.Rename
	}
	if c.Backup != "" {
		habit.BackupName = c.Backup
	}
	if c.Category != "" {
		habit.Category = c.Category
	}
	if c.Frequency != "" {
		frequency, err := buildFrequency(c.Frequency, c.Days, c.Times, c.Interval)
		if err != nil {
			return err
		}
		habit.Frequency = frequency
	}
	if c.TimeOfDay != "" {
		habit.TimeOfDay = models.TimeOfDay(c.TimeOfDay)
	}
	switch c.Remind {
	case "":
	case "off":
		habit.ReminderTime = ""
	default:
		habit.ReminderTime = c.Remind
	}
	habit.UpdatedAt = time.Now()

	if err := habit.Validate(); err != nil {
		return err
	}

	if err := ctx.DB.SaveHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitDoneCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Backup bool   `help:"Record the backup variant instead of the primary."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name)
	if err != nil {
		return err
	}

	kind := models.CompletionPrimary
	if c.Backup {
		kind = models.CompletionBackup
	}

	completion, created, err := ctx.Tracker.Toggle(habit.ID, kind)
	if err != nil {
		return err
	}

	if !created {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Name, ctx.Tracker.Today())
		return nil
	}

	label := habit.Name
	if completion.Kind == models.CompletionBackup && habit.BackupName != "" {
		label = habit.BackupName
	}
	fmt.Printf("Marked %q done for %s (%s)\n", label, completion.LocalDate, completion.Kind)
	fmt.Printf("Streak: %d | Balance: %d XP (level %d)\n", ctx.Tracker.Streak(habit.ID), ctx.Ledger.Balance(), ctx.Ledger.Level())
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *Context) error {
	habits := ctx.DB.ActiveHabits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := ctx.Tracker.Today()
	now := time.Now()

	fmt.Printf("Habits for %s:\n\n", today)
	recorded := 0
	due := 0
	for _, habit := range habits {
		if !habit.IsDueOn(now) {
			continue
		}
		due++
		status := "[ ]"
		if completion, ok := ctx.Tracker.CompletionFor(habit.ID, today); ok {
			status = "[x]"
			if completion.Kind == models.CompletionBackup {
				status = "[b]"
			}
			recorded++
		}
		fmt.Printf("%s %s\n", status, habit.Name)
	}

	fmt.Printf("\nRecorded: %d/%d | Balance: %d XP (level %d)\n", recorded, due, ctx.Ledger.Balance(), ctx.Ledger.Level())
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	habits := ctx.DB.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	// Filter by habit name if specified
	var selectedHabits []models.Habit
	if c.Habit != "" {
		for _, h := range habits {
			if h.Name == c.Habit {
				selectedHabits = []models.Habit{h}
				break
			}
		}
		if len(selectedHabits) == 0 {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
	} else {
		// Only show active habits
		for _, h := range habits {
			if !h.Archived {
				selectedHabits = append(selectedHabits, h)
			}
		}
	}

	// Calculate date range
	endDay := time.Now()
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	// Print header with dates
	fmt.Print("Habit               ")
	maxNameLen := 20
	for i := 0; i < c.Days; i++ {
		day := startDay.AddDate(0, 0, i)
		fmt.Printf(" %5s", day.Format("01/02"))
	}
	fmt.Println()

	// Print separator
	fmt.Print(strings.Repeat("-", maxNameLen))
	for i := 0; i < c.Days; i++ {
		fmt.Print("------")
	}
	fmt.Println()

	// Print each habit's log
	for _, habit := range selectedHabits {
		// Truncate or pad habit name
		name := habit.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		} else {
			name = name + strings.Repeat(" ", maxNameLen-len(name))
		}
		fmt.Print(name)

		// x = primary, b = backup, . = no record
		for i := 0; i < c.Days; i++ {
			day := startDay.AddDate(0, 0, i)
			dayStr := day.Format("2006-01-02")
			completion, ok := ctx.Tracker.CompletionFor(habit.ID, dayStr)
			switch {
			case ok && completion.Kind == models.CompletionBackup:
				fmt.Print("  b   ")
			case ok:
				fmt.Print("  x   ")
			default:
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}

	return nil
}

type HabitHistoryCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Days   int    `help:"Number of days back to list." default:"30"`
	Delete string `help:"Delete the record with this id." default:""`
}

func (c *HabitHistoryCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name)
	if err != nil {
		return err
	}

	if c.Delete != "" {
		found := false
		for _, rec := range ctx.DB.Completions() {
			if rec.ID == c.Delete && rec.HabitID == habit.ID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no record %q for habit %q", c.Delete, habit.Name)
		}
		if err := ctx.DB.DeleteCompletionByID(c.Delete); err != nil {
			return err
		}
		fmt.Printf("Deleted record %s for %q\n", c.Delete, habit.Name)
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -c.Days).Format(constants.DateFormat)
	var records []models.Completion
	for _, rec := range ctx.DB.Completions() {
		if rec.HabitID == habit.ID && rec.LocalDate >= cutoff {
			records = append(records, rec)
		}
	}
	if len(records) == 0 {
		fmt.Printf("No records for %q in the last %d days.\n", habit.Name, c.Days)
		return nil
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].LocalDate > records[j].LocalDate
	})

	fmt.Printf("History for %q:\n\n", habit.Name)
	for _, rec := range records {
		fmt.Printf("%s  %-8s %s\n", rec.LocalDate, rec.Kind, rec.ID)
	}
	return nil
}

type HabitArchiveCmd struct {
	Name      string `arg:"" help:"Habit name to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name)
	if err != nil {
		return err
	}

	habit.Archived = !c.Unarchive
	habit.UpdatedAt = time.Now()
	if err := ctx.DB.SaveHabit(habit); err != nil {
		return err
	}

	if c.Unarchive {
		fmt.Printf("Unarchived habit: %s\n", habit.Name)
	} else {
		fmt.Printf("Archived habit: %s\n", habit.Name)
	}
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticSnapshot()

	if err := ctx.DB.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	fmt.Println("(Past completions are kept and shown with a fallback name)")
	return nil
}
