package models

import "time"

type Tier string

const (
	TierMustDo   Tier = "must_do"
	TierNiceToDo Tier = "nice_to_do"
)

type HabitType string

const (
	// HabitPositive is a habit to build; a completed log entry means success.
	HabitPositive HabitType = "positive"
	// HabitNegative is a habit to avoid; a completed log entry means a slip.
	HabitNegative HabitType = "negative"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceOnce    RecurrenceType = "once"
)

// Recurrence describes how often a habit is expected to be done.
// Target is the number of completed days required per ISO week (weekly)
// or per calendar month (monthly); it is unused for daily and once.
type Recurrence struct {
	Type   RecurrenceType `json:"type"`
	Target int            `json:"target,omitempty"`
}

type Habit struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"` // may carry a leading emoji, cosmetic only
	Tier            Tier       `json:"tier"`
	Type            HabitType  `json:"type"`
	Recurrence      Recurrence `json:"recurrence"`
	GroupID         string     `json:"group_id,omitempty"`
	SuccessCriteria string     `json:"success_criteria,omitempty"` // canonical criteria string
	TriggersSlip    bool       `json:"triggers_slip,omitempty"`    // negative habits only, read by the blocking flow
	ReminderTime    string     `json:"reminder_time,omitempty"`    // HH:MM, schedule metadata for the reminder collaborator
	CurrentStreak   int        `json:"current_streak"`
	BestStreak      int        `json:"best_streak"`
	CreatedAt       time.Time  `json:"created_at"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
}

// Active reports whether the habit participates in aggregate computations.
// Archived habits keep their history but are excluded everywhere.
func (h Habit) Active() bool {
	return h.ArchivedAt == nil
}

// Grouped reports whether the habit is evaluated through a group rather
// than standalone.
func (h Habit) Grouped() bool {
	return h.GroupID != ""
}

// HabitGroup is an any-N-of-M set of habits: the group counts as satisfied
// for a day when at least RequireCount member habits are completed that day.
type HabitGroup struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Tier         Tier      `json:"tier"`
	RequireCount int       `json:"require_count"`
	HabitIDs     []string  `json:"habit_ids"`
	CreatedAt    time.Time `json:"created_at"`
}
