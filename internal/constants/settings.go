package constants

// Default settings values. Settings() returns these whenever the settings
// key is absent or unparsable; the defaults are never persisted by a read.
const (
	DefaultDisplayName      = "Friend"
	DefaultTheme            = "Cyber"
	DefaultAccentColor      = "#10B981"
	DefaultLayoutDensity    = "compact"
	DefaultFontFamily       = "JetBrains Mono"
	DefaultFontScale        = 0.9
	DefaultRemindersEnabled = true
	DefaultAIEnabled        = true
	DefaultWeeklyReviewDay  = 0 // Sunday
	DefaultWeeklyReviewTime = "18:00"
	DefaultPrivacyMode      = "ai_on"
)

// XP values earned per completion kind
const (
	XPPrimary = 10
	XPBackup  = 5
	// XPPerLevel is the amount of earned XP per level
	XPPerLevel = 100
)
