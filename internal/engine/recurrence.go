package engine

import (
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/errors"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

// IsApplicable reports whether the habit is expected to be acted on for the
// given date. Daily, weekly, and monthly habits are applicable on every day
// from their creation onward; a once habit stops being applicable after its
// first completion.
func (e *Engine) IsApplicable(habitID string, date time.Time) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, ok := e.habits[habitID]
	if !ok {
		return false, errors.NotFound("habit", habitID)
	}
	return e.applicable(h, date), nil
}

func (e *Engine) applicable(h *models.Habit, date time.Time) bool {
	day := models.DayKey(date)
	if day < models.DayKey(h.CreatedAt) {
		return false
	}

	if h.Recurrence.Type == models.RecurrenceOnce {
		// Applicable until first completion. The completion day itself
		// still counts as applicable so it reads as met, not skipped.
		first := e.firstCompletion(h.ID)
		return first == "" || day <= first
	}
	return true
}

// IsSatisfied reports whether the habit's recurrence target is met for the
// period containing the given date: the day itself for daily habits, the
// ISO week (Mon-Sun) for weekly, the calendar month for monthly, and all of
// history for once.
func (e *Engine) IsSatisfied(habitID string, date time.Time) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, ok := e.habits[habitID]
	if !ok {
		return false, errors.NotFound("habit", habitID)
	}
	return e.satisfied(h, date), nil
}

func (e *Engine) satisfied(h *models.Habit, date time.Time) bool {
	switch h.Recurrence.Type {
	case models.RecurrenceDaily:
		return e.completedOn(h.ID, models.DayKey(date))
	case models.RecurrenceWeekly:
		start, end := weekBounds(date)
		return e.completedInRange(h, start, end) >= h.Recurrence.Target
	case models.RecurrenceMonthly:
		start, end := monthBounds(date)
		return e.completedInRange(h, start, end) >= h.Recurrence.Target
	case models.RecurrenceOnce:
		return e.firstCompletion(h.ID) != ""
	default:
		return false
	}
}

// completedInRange counts completed days in [start, end], clipped so days
// before the habit existed never count against a period target.
func (e *Engine) completedInRange(h *models.Habit, start, end time.Time) int {
	count := 0
	created := models.DayKey(h.CreatedAt)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := models.DayKey(d)
		if day < created {
			continue
		}
		if e.completedOn(h.ID, day) {
			count++
		}
	}
	return count
}

// weekBounds returns the Monday and Sunday of the ISO week containing t.
func weekBounds(t time.Time) (time.Time, time.Time) {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	start := midnight(t).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// monthBounds returns the first and last day of the calendar month containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, -1)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
