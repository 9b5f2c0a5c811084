package constants

// Settings keys as persisted in the key-value settings store.
const (
	SettingTimezone        = "timezone"
	SettingMorningReminder = "morning_reminder"
	SettingEveningSummary  = "evening_summary"
	SettingDefaultLogDays  = "default_log_days"
	SettingRemindersOn     = "reminders_enabled"
)
