package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "cripes"
	DefaultConfigPath = "~/.config/cripes/cripes.json"
	Version           = "v0.3.0"

	// DefaultKeyringUser is the keyring account name for the Gemini API key
	DefaultKeyringUser = "gemini-api-key"
	// APIKeyEnvVar is consulted when the OS keyring has no stored key
	APIKeyEnvVar = "CRIPES_API_KEY"

	// Snapshot export constants
	MaxSnapshots       = 14
	SnapshotDirName    = "backups"
	SnapshotFilePrefix = "cripes-"
	SnapshotFileSuffix = ".json"

	// Reminder constants
	ReminderPollInterval = 30 * time.Second

	// Notifier constants
	NotifierLockfileName   = "cripes-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.cripes.tray"
	TrayExecutablePrefix   = "cripes-tray"
)

// Session States
const (
	StateToday SessionState = iota
	StateHabits
	StateJournal
	StateRewards
	StateAddHabit
	StateConfirmDelete
)
