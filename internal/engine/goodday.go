package engine

import (
	"sort"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/errors"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

// IsGoodDay reports whether every must-do obligation is met for the date:
// each active, must-do, positive, ungrouped habit applicable that day is
// completed; each active must-do group is satisfied; and no active must-do
// negative habit has slipped. A day with zero applicable must-do
// obligations is vacuously good.
func (e *Engine) IsGoodDay(date time.Time) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.goodDay(date)
}

func (e *Engine) goodDay(date time.Time) bool {
	day := models.DayKey(date)

	for _, h := range e.habits {
		if !h.Active() || h.Tier != models.TierMustDo {
			continue
		}
		switch h.Type {
		case models.HabitPositive:
			if h.Grouped() {
				continue // evaluated through the group
			}
			if e.applicable(h, date) && !e.completedOn(h.ID, day) {
				return false
			}
		case models.HabitNegative:
			// A completed log on a negative habit is a slip.
			if e.applicable(h, date) && e.completedOn(h.ID, day) {
				return false
			}
		}
	}

	for _, g := range e.groups {
		if g.Tier != models.TierMustDo {
			continue
		}
		// A group with no available members is unsatisfiable; it is
		// treated as not applicable here rather than poisoning every day.
		if e.groupAvailableMembers(g) == 0 {
			continue
		}
		if !e.groupSatisfied(g, date) {
			return false
		}
	}

	return true
}

// GoodDayRate returns the fraction of the last `days` calendar days
// (including today, clipped to the earliest active habit's creation) that
// were good days. With no active habits the rate is 0.
func (e *Engine) GoodDayRate(days int) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if days <= 0 {
		return 0
	}
	earliest := e.earliestCreation()
	if earliest == "" {
		return 0
	}
	floor, err := models.ParseDay(earliest)
	if err != nil {
		return 0
	}

	today := dayOf(e.now())
	start := today.AddDate(0, 0, -(days - 1))
	if start.Before(floor) {
		start = floor
	}

	total, good := 0, 0
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		total++
		if e.goodDay(d) {
			good++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(good) / float64(total)
}

// CompletionRate returns the habit's completion fraction over the last
// `days` calendar days: completed/applicable days for daily habits,
// satisfied/overlapping periods for weekly and monthly, and 1 or 0 for a
// once habit depending on whether it was completed within the window.
func (e *Engine) CompletionRate(habitID string, days int) (float64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, ok := e.habits[habitID]
	if !ok {
		return 0, errors.NotFound("habit", habitID)
	}
	if days <= 0 {
		return 0, nil
	}

	today := dayOf(e.now())
	start := today.AddDate(0, 0, -(days - 1))
	created := dayOf(h.CreatedAt)
	if start.Before(created) {
		start = created
	}

	switch h.Recurrence.Type {
	case models.RecurrenceDaily:
		total, done := 0, 0
		for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
			total++
			if e.completedOn(h.ID, models.DayKey(d)) {
				done++
			}
		}
		if total == 0 {
			return 0, nil
		}
		return float64(done) / float64(total), nil

	case models.RecurrenceWeekly, models.RecurrenceMonthly:
		total, met := 0, 0
		last := e.periodStart(h, today)
		for p := e.periodStart(h, start); !p.After(last); p = e.nextPeriod(h, p) {
			total++
			if e.satisfied(h, p) {
				met++
			}
		}
		if total == 0 {
			return 0, nil
		}
		return float64(met) / float64(total), nil

	case models.RecurrenceOnce:
		first := e.firstCompletion(h.ID)
		if first == "" {
			return 0, nil
		}
		if first >= models.DayKey(start) && first <= models.DayKey(today) {
			return 1, nil
		}
		return 0, nil
	}
	return 0, nil
}

// GroupStatus pairs a group with its completion progress for a day.
type GroupStatus struct {
	Group          models.HabitGroup
	CompletedCount int
}

// DayObligations is the undone must-do surface read by the blocking flow:
// standalone habits not yet completed, groups below their required count,
// and negative habits that have slipped.
type DayObligations struct {
	Habits  []models.Habit
	Groups  []GroupStatus
	Slipped []models.Habit
}

// UndoneMustDos lists every unmet must-do obligation for the date.
func (e *Engine) UndoneMustDos(date time.Time) DayObligations {
	e.mu.RLock()
	defer e.mu.RUnlock()

	day := models.DayKey(date)
	var out DayObligations

	for _, h := range e.habits {
		if !h.Active() || h.Tier != models.TierMustDo {
			continue
		}
		switch h.Type {
		case models.HabitPositive:
			if h.Grouped() {
				continue
			}
			if e.applicable(h, date) && !e.completedOn(h.ID, day) {
				out.Habits = append(out.Habits, *h)
			}
		case models.HabitNegative:
			if e.applicable(h, date) && e.completedOn(h.ID, day) {
				out.Slipped = append(out.Slipped, *h)
			}
		}
	}

	for _, g := range e.groups {
		if g.Tier != models.TierMustDo || e.groupAvailableMembers(g) == 0 {
			continue
		}
		count := e.groupCompletedCount(g, date)
		if count < g.RequireCount {
			out.Groups = append(out.Groups, GroupStatus{Group: *g, CompletedCount: count})
		}
	}

	sort.Slice(out.Habits, func(i, j int) bool { return out.Habits[i].CreatedAt.Before(out.Habits[j].CreatedAt) })
	sort.Slice(out.Slipped, func(i, j int) bool { return out.Slipped[i].CreatedAt.Before(out.Slipped[j].CreatedAt) })
	sort.Slice(out.Groups, func(i, j int) bool {
		return out.Groups[i].Group.CreatedAt.Before(out.Groups[j].Group.CreatedAt)
	})
	return out
}
