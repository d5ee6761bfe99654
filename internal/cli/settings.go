package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cripes/internal/constants"
	"cripes/internal/keyring"
)

type SettingsCmd struct {
	Show   SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set    SettingsSetCmd  `cmd:"" help:"Set a settings value."`
	APIKey APIKeyCmd       `cmd:"" name:"apikey" help:"Manage the Gemini API key."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	s := ctx.DB.Settings()

	fmt.Printf("Display name:       %s\n", s.DisplayName)
	fmt.Printf("Theme:              %s\n", s.Theme)
	fmt.Printf("Accent color:       %s\n", s.AccentColor)
	fmt.Printf("Layout density:     %s\n", s.LayoutDensity)
	fmt.Printf("Font:               %s (scale %.2f)\n", s.FontFamily, s.FontScale)
	fmt.Printf("Reminders:          %v\n", s.RemindersEnabled)
	fmt.Printf("AI feedback:        %v (privacy: %s)\n", s.AIEnabled, s.PrivacyMode)
	if len(s.AIExcludedTags) > 0 {
		fmt.Printf("AI-excluded tags:   %s\n", strings.Join(s.AIExcludedTags, ", "))
	}
	fmt.Printf("Weekly review:      %s at %s\n", time.Weekday(s.WeeklyReviewDay), s.WeeklyReviewTime)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key: display-name, theme, accent-color, layout-density, font-family, font-scale, reminders, ai, privacy-mode, ai-excluded-tags, weekly-review-day, weekly-review-time."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	s := ctx.DB.Settings()

	switch c.Key {
	case "display-name":
		s.DisplayName = c.Value
	case "theme":
		s.Theme = c.Value
	case "accent-color":
		s.AccentColor = c.Value
	case "layout-density":
		if c.Value != "compact" && c.Value != "comfortable" && c.Value != "roomy" {
			return fmt.Errorf("layout density must be compact, comfortable, or roomy")
		}
		s.LayoutDensity = c.Value
	case "font-family":
		s.FontFamily = c.Value
	case "font-scale":
		scale, err := strconv.ParseFloat(c.Value, 64)
		if err != nil || scale <= 0 {
			return fmt.Errorf("font scale must be a positive number")
		}
		s.FontScale = scale
	case "reminders":
		enabled, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("reminders must be true or false")
		}
		s.RemindersEnabled = enabled
	case "ai":
		enabled, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("ai must be true or false")
		}
		s.AIEnabled = enabled
	case "privacy-mode":
		if c.Value != "local_only" && c.Value != "ai_on" {
			return fmt.Errorf("privacy mode must be local_only or ai_on")
		}
		s.PrivacyMode = c.Value
	case "ai-excluded-tags":
		s.AIExcludedTags = splitTags(c.Value)
	case "weekly-review-day":
		days, err := ParseWeekdays(c.Value)
		if err != nil || len(days) != 1 {
			return fmt.Errorf("weekly review day must be a single weekday")
		}
		s.WeeklyReviewDay = int(days[0])
	case "weekly-review-time":
		if _, err := time.Parse(constants.TimeFormat, c.Value); err != nil {
			return fmt.Errorf("weekly review time must be HH:MM: %w", err)
		}
		s.WeeklyReviewTime = c.Value
	default:
		return fmt.Errorf("unknown setting: %q", c.Key)
	}

	if err := ctx.DB.SaveSettings(s); err != nil {
		return err
	}

	fmt.Printf("Set %s to %s\n", c.Key, c.Value)
	return nil
}

type APIKeyCmd struct {
	Set    APIKeySetCmd    `cmd:"" help:"Store the Gemini API key in the OS keyring."`
	Delete APIKeyDeleteCmd `cmd:"" help:"Remove the Gemini API key from the OS keyring."`
	Status APIKeyStatusCmd `cmd:"" help:"Check whether an API key is configured." default:"1"`
}

type APIKeySetCmd struct {
	Key string `arg:"" help:"Gemini API key."`
}

func (c *APIKeySetCmd) Run(ctx *Context) error {
	if err := keyring.SetAPIKey(c.Key); err != nil {
		return err
	}
	fmt.Println("API key stored in OS keyring.")
	return nil
}

type APIKeyDeleteCmd struct{}

func (c *APIKeyDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		return err
	}
	fmt.Println("API key removed from OS keyring.")
	return nil
}

type APIKeyStatusCmd struct{}

func (c *APIKeyStatusCmd) Run(ctx *Context) error {
	if _, err := keyring.GetAPIKey(); err != nil {
		fmt.Println("No API key configured.")
		fmt.Printf("Set one with 'cripes settings apikey set <key>' or export %s.\n", constants.APIKeyEnvVar)
		return nil
	}
	fmt.Println("API key is configured.")
	return nil
}
