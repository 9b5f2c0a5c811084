package constants

const (
	AppName           = "habitat"
	DefaultConfigPath = "~/.config/habitat/habitat.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// GoodDayScanCap bounds the backward scan of the cross-habit good-day
	// streak. Scans that reach the cap report the cap value; the CLI renders
	// it as "365+".
	GoodDayScanCap = 365

	// Settings defaults
	DefaultTimezone        = "Local"
	DefaultMorningReminder = "07:30"
	DefaultEveningSummary  = "21:30"
	DefaultLogDays         = 30
)
