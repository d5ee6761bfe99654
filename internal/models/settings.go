package models

import "cripes/internal/constants"

// Settings represents application-wide settings. A single instance is
// stored under its own collection key.
type Settings struct {
	DisplayName      string   `json:"displayName"`
	Avatar           string   `json:"avatar,omitempty"` // data URI or path
	Theme            string   `json:"theme"`
	AccentColor      string   `json:"accentColorOverride,omitempty"`
	LayoutDensity    string   `json:"layoutDensity"` // compact | comfortable | roomy
	FontFamily       string   `json:"fontFamily"`
	FontScale        float64  `json:"fontScale"`
	RemindersEnabled bool     `json:"remindersEnabled"`
	AIEnabled        bool     `json:"aiEnabled"`
	AIExcludedTags   []string `json:"aiExcludedTags"`
	WeeklyReviewDay  int      `json:"weeklyReviewDay"` // 0 (Sunday) to 6
	WeeklyReviewTime string   `json:"weeklyReviewTime"`
	PrivacyMode      string   `json:"privacyMode"` // local_only | ai_on
}

// DefaultSettings returns the documented default settings object. It is
// returned by reads of an empty store and is never persisted as a side
// effect of reading.
func DefaultSettings() Settings {
	return Settings{
		DisplayName:      constants.DefaultDisplayName,
		Theme:            constants.DefaultTheme,
		AccentColor:      constants.DefaultAccentColor,
		LayoutDensity:    constants.DefaultLayoutDensity,
		FontFamily:       constants.DefaultFontFamily,
		FontScale:        constants.DefaultFontScale,
		RemindersEnabled: constants.DefaultRemindersEnabled,
		AIEnabled:        constants.DefaultAIEnabled,
		AIExcludedTags:   []string{},
		WeeklyReviewDay:  constants.DefaultWeeklyReviewDay,
		WeeklyReviewTime: constants.DefaultWeeklyReviewTime,
		PrivacyMode:      constants.DefaultPrivacyMode,
	}
}

// AIAllowed reports whether AI features may be used at all.
func (s *Settings) AIAllowed() bool {
	return s.AIEnabled && s.PrivacyMode != "local_only"
}

// DefaultCategories returns the six fixed category labels used to
// classify habits when none have been saved.
func DefaultCategories() []string {
	return []string{"Career", "Relationships", "Intellectual", "Physical", "Emotional", "Spiritual"}
}
