package constants

const (
	AppName            = "habit100"
	DefaultKeyringUser = "database-connection"
	CoachKeyringUser   = "coach-api-key"
	DefaultConfigPath  = "~/.config/habit100/habit100.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ChallengeDays is the fixed length of a habit challenge
	ChallengeDays = 100

	// MaxHabitNameLen is the maximum length of a habit name after trimming
	MaxHabitNameLen = 100

	// MaxNoteLen is the maximum length of a daily record note
	MaxNoteLen = 500

	// RecentWindowDays is the default trailing window for recent achievement rates
	RecentWindowDays = 7

	// DefaultListenAddr is the default bind address for the HTTP server
	DefaultListenAddr = ":8080"
)
