package models

// Settings represents application-wide settings. They are loaded once and
// passed explicitly to the collaborators that need them; nothing reads them
// ambiently.
type Settings struct {
	Timezone        string `json:"timezone"`          // IANA timezone name (e.g. "Europe/London"), or "Local" for the system timezone
	MorningReminder string `json:"morning_reminder"`  // HH:MM, daily must-do digest time
	EveningSummary  string `json:"evening_summary"`   // HH:MM, good-day summary time
	DefaultLogDays  int    `json:"default_log_days"`  // window for habit log / rate displays
	RemindersOn     bool   `json:"reminders_enabled"` // master switch for the reminder daemon
}
