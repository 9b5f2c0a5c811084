package models

import (
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/constants"
)

// DailyLog is one day's record for one habit. There is at most one log
// per (habit, day); writes are upserts keyed on that pair.
type DailyLog struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Completed bool      `json:"completed"`
	Note      string    `json:"note,omitempty"`
	PhotoRef  string    `json:"photo_ref,omitempty"` // opaque reference, storage is external
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayKey truncates a timestamp to its calendar day string (YYYY-MM-DD).
// Time of day is discarded everywhere in the engine.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD day string back into a midnight time.Time.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}
