package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"cripes/internal/constants"
	"cripes/internal/feedback"
	"cripes/internal/models"
)

type JournalCmd struct {
	Add    JournalAddCmd    `cmd:"" help:"Write a journal entry."`
	List   JournalListCmd   `cmd:"" help:"List recent journal entries."`
	Show   JournalShowCmd   `cmd:"" help:"Show a journal entry."`
	Delete JournalDeleteCmd `cmd:"" help:"Delete a journal entry."`
	Template struct {
		New     TemplateNewCmd     `cmd:"" help:"Create a journal template interactively."`
		List    TemplateListCmd    `cmd:"" help:"List journal templates."`
		Show    TemplateShowCmd    `cmd:"" help:"Show a template's fields."`
		Archive TemplateArchiveCmd `cmd:"" help:"Archive a template."`
		Suggest TemplateSuggestCmd `cmd:"" help:"Suggest new fields based on past entries (AI)."`
	} `cmd:"" help:"Manage journal templates."`
}

// findTemplate resolves a template by id or exact name.
func findTemplate(ctx *Context, idOrName string) (models.Template, error) {
	templates := ctx.DB.Templates()
	for _, t := range templates {
		if t.ID == idOrName || t.Name == idOrName {
			return t, nil
		}
	}
	return models.Template{}, fmt.Errorf("template %q not found", idOrName)
}

// promptField collects a single field value interactively and encodes it
// as the JSON shape its field type expects.
func promptField(f models.Field) (json.RawMessage, error) {
	title := f.Label
	if f.Required {
		title += " *"
	}

	switch f.Type {
	case models.FieldLongText:
		var value string
		form := huh.NewForm(huh.NewGroup(
			huh.NewText().Title(title).Description(f.Description).Value(&value),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}
		return json.Marshal(value)

	case models.FieldSlider, models.FieldNumber:
		var raw string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title(title).Description(f.Description).Value(&raw),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}
		if raw == "" {
			return json.RawMessage("null"), nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("field %q requires a number: %w", f.Key, err)
		}
		if f.Type == models.FieldSlider && (int(n) < f.SliderMin || int(n) > f.SliderMax) {
			return nil, fmt.Errorf("field %q must be between %d and %d", f.Key, f.SliderMin, f.SliderMax)
		}
		return json.Marshal(n)

	case models.FieldYesNo:
		var value bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title(title).Description(f.Description).Value(&value),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}
		return json.Marshal(value)

	case models.FieldSingleChoice:
		var value string
		options := make([]huh.Option[string], len(f.Options))
		for i, o := range f.Options {
			options[i] = huh.NewOption(o, o)
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title(title).Options(options...).Value(&value),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}
		return json.Marshal(value)

	case models.FieldMultiChoice:
		var values []string
		options := make([]huh.Option[string], len(f.Options))
		for i, o := range f.Options {
			options[i] = huh.NewOption(o, o)
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[string]().Title(title).Options(options...).Value(&values),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}
		return json.Marshal(values)

	default:
		// short_text, date, time are all free-form strings.
		var value string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title(title).Description(f.Description).Value(&value),
		))
		if err := form.Run(); err != nil {
			return nil, err
		}
		return json.Marshal(value)
	}
}

type JournalAddCmd struct {
	Template string `help:"Template id or name." default:"default-daily"`
	Tags     string `help:"Comma-separated tags." default:""`
	Mood     int    `help:"Mood from 1 to 10." default:"0"`
	NoAI     bool   `help:"Skip AI feedback for this entry."`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	template, err := findTemplate(ctx, c.Template)
	if err != nil {
		return err
	}
	if template.Archived {
		return fmt.Errorf("template %q is archived", template.Name)
	}

	data := make(map[string]json.RawMessage, len(template.Fields))
	for _, f := range template.Fields {
		value, err := promptField(f)
		if err != nil {
			return err
		}
		if string(value) == "null" || string(value) == `""` {
			continue
		}
		data[f.Key] = value
	}

	mood := c.Mood
	if mood == 0 {
		mood = 5
		if raw, ok := data["mood"]; ok {
			var n float64
			if json.Unmarshal(raw, &n) == nil {
				mood = int(n)
			}
		}
	}

	entry := models.Entry{
		ID:         uuid.New().String(),
		TemplateID: template.ID,
		LocalDate:  ctx.Tracker.Today(),
		CreatedAt:  time.Now(),
		Tags:       splitTags(c.Tags),
		Mood:       mood,
		Data:       data,
	}
	if err := entry.ValidateAgainst(&template); err != nil {
		return err
	}

	if !c.NoAI {
		if svc := ctx.FeedbackService(context.Background()); svc != nil {
			settings := ctx.DB.Settings()
			if !entryExcluded(entry, settings.AIExcludedTags) {
				fmt.Println("Generating feedback...")
				entry.AIFeedback = svc.Daily(context.Background(),
					entry,
					ctx.Tracker.CompletionsOn(entry.LocalDate),
					ctx.DB.Habits(),
				)
			}
		}
	}

	if err := ctx.DB.SaveEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Saved journal entry for %s (%s)\n", entry.LocalDate, template.Name)
	if entry.AIFeedback != "" {
		fmt.Printf("\n%s\n", entry.AIFeedback)
	}
	return nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func entryExcluded(entry models.Entry, excludedTags []string) bool {
	return len(feedback.FilterExcluded([]models.Entry{entry}, excludedTags)) == 0
}

type JournalListCmd struct {
	Days int `help:"Number of days back to list." default:"14"`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	cutoff := time.Now().AddDate(0, 0, -c.Days).Format(constants.DateFormat)

	templates := make(map[string]string)
	for _, t := range ctx.DB.Templates() {
		templates[t.ID] = t.Name
	}

	found := 0
	for _, e := range ctx.DB.Entries() {
		if e.LocalDate < cutoff {
			continue
		}
		found++
		name := templates[e.TemplateID]
		if name == "" {
			name = "unknown template"
		}
		mood := ""
		if e.Mood > 0 {
			mood = fmt.Sprintf("  mood %d/10", e.Mood)
		}
		tags := ""
		if len(e.Tags) > 0 {
			tags = "  #" + strings.Join(e.Tags, " #")
		}
		fmt.Printf("%s  %s  %s%s%s\n", e.LocalDate, e.ID[:8], name, mood, tags)
	}

	if found == 0 {
		fmt.Println("No journal entries found.")
	}
	return nil
}

type JournalShowCmd struct {
	Entry string `arg:"" help:"Entry id (or id prefix) or date (YYYY-MM-DD)."`
}

func (c *JournalShowCmd) Run(ctx *Context) error {
	var match *models.Entry
	entries := ctx.DB.Entries()
	for i := range entries {
		e := &entries[i]
		if e.ID == c.Entry || strings.HasPrefix(e.ID, c.Entry) || e.LocalDate == c.Entry {
			match = e
			break
		}
	}
	if match == nil {
		return fmt.Errorf("journal entry %q not found", c.Entry)
	}

	template, err := ctx.DB.GetTemplate(match.TemplateID)
	if err == nil {
		fmt.Printf("%s — %s\n\n", match.LocalDate, template.Name)
		for _, f := range template.Fields {
			raw, ok := match.Data[f.Key]
			if !ok {
				continue
			}
			fmt.Printf("%s: %s\n", f.Label, formatValue(raw))
		}
	} else {
		fmt.Printf("%s\n\n", match.LocalDate)
		for key, raw := range match.Data {
			fmt.Printf("%s: %s\n", key, formatValue(raw))
		}
	}

	if match.Mood > 0 {
		fmt.Printf("\nMood: %d/10\n", match.Mood)
	}
	if len(match.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(match.Tags, ", "))
	}
	if match.AIFeedback != "" {
		fmt.Printf("\n%s\n", match.AIFeedback)
	}
	return nil
}

// formatValue renders a stored JSON value for display.
func formatValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return string(raw)
}

type JournalDeleteCmd struct {
	Entry string `arg:"" help:"Entry id (or id prefix) to delete."`
}

func (c *JournalDeleteCmd) Run(ctx *Context) error {
	for _, e := range ctx.DB.Entries() {
		if e.ID == c.Entry || strings.HasPrefix(e.ID, c.Entry) {
			ctx.PerformAutomaticSnapshot()
			if err := ctx.DB.DeleteEntry(e.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted journal entry for %s\n", e.LocalDate)
			return nil
		}
	}
	return fmt.Errorf("journal entry %q not found", c.Entry)
}

type TemplateNewCmd struct {
	Name string `arg:"" help:"Template name."`
}

func (c *TemplateNewCmd) Run(ctx *Context) error {
	for _, t := range ctx.DB.Templates() {
		if t.Name == c.Name {
			return fmt.Errorf("template with name %q already exists", c.Name)
		}
	}

	now := time.Now()
	template := models.Template{
		ID:        uuid.New().String(),
		Name:      c.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for {
		var (
			key, label, description string
			fieldType               models.FieldType
			required, another       bool
		)
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Field key").Description("Stable identifier, e.g. gratitude").Value(&key),
			huh.NewInput().Title("Label").Value(&label),
			huh.NewInput().Title("Description").Value(&description),
			huh.NewSelect[models.FieldType]().Title("Type").Options(
				huh.NewOption("Short text", models.FieldShortText),
				huh.NewOption("Long text", models.FieldLongText),
				huh.NewOption("Slider (1-10)", models.FieldSlider),
				huh.NewOption("Single choice", models.FieldSingleChoice),
				huh.NewOption("Multi choice", models.FieldMultiChoice),
				huh.NewOption("Date", models.FieldDate),
				huh.NewOption("Time", models.FieldTime),
				huh.NewOption("Number", models.FieldNumber),
				huh.NewOption("Yes / No", models.FieldYesNo),
			).Value(&fieldType),
			huh.NewConfirm().Title("Required?").Value(&required),
			huh.NewConfirm().Title("Add another field?").Value(&another),
		))
		if err := form.Run(); err != nil {
			return err
		}

		field := models.Field{
			ID:          uuid.New().String(),
			Key:         key,
			Label:       label,
			Description: description,
			Type:        fieldType,
			Required:    required,
		}
		if fieldType == models.FieldSlider {
			field.SliderMin = 1
			field.SliderMax = 10
		}
		if fieldType == models.FieldSingleChoice || fieldType == models.FieldMultiChoice {
			var raw string
			optForm := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Options").Description("Comma-separated choices").Value(&raw),
			))
			if err := optForm.Run(); err != nil {
				return err
			}
			field.Options = splitTags(raw)
		}
		template.Fields = append(template.Fields, field)

		if !another {
			break
		}
	}

	if err := template.Validate(); err != nil {
		return err
	}
	if err := ctx.DB.SaveTemplate(template); err != nil {
		return err
	}

	fmt.Printf("Created template %q with %d fields\n", template.Name, len(template.Fields))
	return nil
}

type TemplateListCmd struct {
	Archived bool `help:"Include archived templates."`
}

func (c *TemplateListCmd) Run(ctx *Context) error {
	for _, t := range ctx.DB.Templates() {
		if t.Archived && !c.Archived {
			continue
		}
		status := ""
		if t.Archived {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%s%s  (%s, %d fields)\n", t.Name, status, t.ID, len(t.Fields))
	}
	return nil
}

type TemplateShowCmd struct {
	Template string `arg:"" help:"Template id or name."`
}

func (c *TemplateShowCmd) Run(ctx *Context) error {
	template, err := findTemplate(ctx, c.Template)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n", template.Name, template.ID)
	for _, f := range template.Fields {
		required := ""
		if f.Required {
			required = " (required)"
		}
		fmt.Printf("  %-20s %-14s %s%s\n", f.Key, f.Type, f.Label, required)
	}
	return nil
}

type TemplateArchiveCmd struct {
	Template  string `arg:"" help:"Template id or name."`
	Unarchive bool   `help:"Unarchive the template instead."`
}

func (c *TemplateArchiveCmd) Run(ctx *Context) error {
	template, err := findTemplate(ctx, c.Template)
	if err != nil {
		return err
	}

	template.Archived = !c.Unarchive
	template.UpdatedAt = time.Now()
	if err := ctx.DB.SaveTemplate(template); err != nil {
		return err
	}

	if c.Unarchive {
		fmt.Printf("Unarchived template: %s\n", template.Name)
	} else {
		fmt.Printf("Archived template: %s\n", template.Name)
	}
	return nil
}

type TemplateSuggestCmd struct {
	Template string `arg:"" help:"Template id or name."`
}

func (c *TemplateSuggestCmd) Run(ctx *Context) error {
	template, err := findTemplate(ctx, c.Template)
	if err != nil {
		return err
	}

	svc := ctx.FeedbackService(context.Background())
	if svc == nil {
		return fmt.Errorf("AI features are disabled or no API key is configured (see 'cripes settings apikey')")
	}

	settings := ctx.DB.Settings()
	var entries []models.Entry
	for _, e := range ctx.DB.Entries() {
		if e.TemplateID == template.ID {
			entries = append(entries, e)
		}
	}
	entries = feedback.FilterExcluded(entries, settings.AIExcludedTags)

	fmt.Println(svc.SuggestFields(context.Background(), template, entries))
	return nil
}
