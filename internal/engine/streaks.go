package engine

import (
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/constants"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

// recomputeStreaks refreshes the habit's cached streak fields from the log
// history. Called under the write lock after every log mutation, so the
// cache never diverges from the pure computation.
func (e *Engine) recomputeStreaks(h *models.Habit) {
	switch h.Recurrence.Type {
	case models.RecurrenceDaily:
		h.CurrentStreak, h.BestStreak = e.dailyStreaks(h)
	case models.RecurrenceWeekly, models.RecurrenceMonthly:
		h.CurrentStreak, h.BestStreak = e.periodStreaks(h)
	case models.RecurrenceOnce:
		// Streaks do not really apply to one-off tasks: both values are
		// pinned to 1 once completed, permanently.
		if e.firstCompletion(h.ID) != "" {
			h.CurrentStreak, h.BestStreak = 1, 1
		} else {
			h.CurrentStreak, h.BestStreak = 0, 0
		}
	}
}

// dailyStreaks scans day-by-day. The current streak includes today only if
// today is already completed, otherwise counting starts at yesterday; the
// best streak is the longest run anywhere in the habit's history.
func (e *Engine) dailyStreaks(h *models.Habit) (current, best int) {
	today := dayOf(e.now())
	created := dayOf(h.CreatedAt)

	d := today
	if !e.completedOn(h.ID, models.DayKey(d)) {
		d = d.AddDate(0, 0, -1)
	}
	for !d.Before(created) && e.completedOn(h.ID, models.DayKey(d)) {
		current++
		d = d.AddDate(0, 0, -1)
	}

	run := 0
	for d := created; !d.After(today); d = d.AddDate(0, 0, 1) {
		if e.completedOn(h.ID, models.DayKey(d)) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return current, best
}

// periodStreaks is the weekly/monthly analogue of dailyStreaks: the unit of
// consecutiveness is the ISO week or calendar month, and a period counts
// when its completion target is met. The in-progress period is included
// optimistically only if already satisfied.
func (e *Engine) periodStreaks(h *models.Habit) (current, best int) {
	today := dayOf(e.now())
	currentPeriod := e.periodStart(h, today)
	createdPeriod := e.periodStart(h, dayOf(h.CreatedAt))

	p := currentPeriod
	if !e.satisfied(h, p) {
		p = e.prevPeriod(h, p)
	}
	for !p.Before(createdPeriod) && e.satisfied(h, p) {
		current++
		p = e.prevPeriod(h, p)
	}

	run := 0
	for p := createdPeriod; !p.After(currentPeriod); p = e.nextPeriod(h, p) {
		if e.satisfied(h, p) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return current, best
}

func (e *Engine) periodStart(h *models.Habit, t time.Time) time.Time {
	if h.Recurrence.Type == models.RecurrenceMonthly {
		start, _ := monthBounds(t)
		return start
	}
	start, _ := weekBounds(t)
	return start
}

func (e *Engine) prevPeriod(h *models.Habit, start time.Time) time.Time {
	if h.Recurrence.Type == models.RecurrenceMonthly {
		return start.AddDate(0, -1, 0)
	}
	return start.AddDate(0, 0, -7)
}

func (e *Engine) nextPeriod(h *models.Habit, start time.Time) time.Time {
	if h.Recurrence.Type == models.RecurrenceMonthly {
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 7)
}

// CurrentGoodDayStreak counts consecutive good days ending today, scanning
// backward. Today is included only if already good, otherwise counting
// starts at yesterday. The scan is bounded: at the cap the cap value is
// returned, which the CLI renders as "365+" rather than pretending the
// streak ends there.
func (e *Engine) CurrentGoodDayStreak() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	earliest := e.earliestCreation()
	if earliest == "" {
		return 0
	}
	floor, err := models.ParseDay(earliest)
	if err != nil {
		return 0
	}

	d := dayOf(e.now())
	if !e.goodDay(d) {
		d = d.AddDate(0, 0, -1)
	}

	streak := 0
	for streak < constants.GoodDayScanCap && !d.Before(floor) && e.goodDay(d) {
		streak++
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

// earliestCreation returns the earliest creation day among active habits,
// or "" when none exist. Aggregate windows never reach past it.
func (e *Engine) earliestCreation() string {
	earliest := ""
	for _, h := range e.habits {
		if !h.Active() {
			continue
		}
		day := models.DayKey(h.CreatedAt)
		if earliest == "" || day < earliest {
			earliest = day
		}
	}
	return earliest
}

// dayOf normalizes a timestamp to its calendar day at UTC midnight, so all
// day arithmetic runs in one timeline regardless of source location.
func dayOf(t time.Time) time.Time {
	d, _ := models.ParseDay(models.DayKey(t))
	return d
}
