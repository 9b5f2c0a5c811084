// Package validation checks construction input for habits, groups, and
// settings. Violations are reported as ValidationError and always before
// any state changes; referential checks (ids exist, bidirectional group
// membership) live in the engine, which owns the snapshot.
package validation

import (
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/constants"
	"github.com/SashaSaw/Habitat-sub000/internal/errors"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

// ValidateHabit checks a habit's shape: name, tier, type, recurrence
// target ranges, and optional reminder time format.
func ValidateHabit(h models.Habit) error {
	if h.Name == "" {
		return errors.Validationf("habit name must not be empty")
	}

	switch h.Tier {
	case models.TierMustDo, models.TierNiceToDo:
	default:
		return errors.Validationf("invalid tier %q", h.Tier)
	}

	switch h.Type {
	case models.HabitPositive, models.HabitNegative:
	default:
		return errors.Validationf("invalid habit type %q", h.Type)
	}

	if h.TriggersSlip && h.Type != models.HabitNegative {
		return errors.Validationf("triggers_slip is only meaningful for negative habits")
	}

	if err := validateRecurrence(h.Recurrence); err != nil {
		return err
	}

	if h.ReminderTime != "" {
		if _, err := time.Parse(constants.TimeFormat, h.ReminderTime); err != nil {
			return errors.Validationf("invalid reminder time %q (expected HH:MM)", h.ReminderTime)
		}
	}

	return nil
}

func validateRecurrence(r models.Recurrence) error {
	switch r.Type {
	case models.RecurrenceDaily, models.RecurrenceOnce:
		if r.Target != 0 {
			return errors.Validationf("%s recurrence takes no target", r.Type)
		}
	case models.RecurrenceWeekly:
		if r.Target < 1 || r.Target > 7 {
			return errors.Validationf("weekly target must be between 1 and 7, got %d", r.Target)
		}
	case models.RecurrenceMonthly:
		if r.Target < 1 || r.Target > 31 {
			return errors.Validationf("monthly target must be between 1 and 31, got %d", r.Target)
		}
	default:
		return errors.Validationf("invalid recurrence type %q", r.Type)
	}
	return nil
}

// ValidateGroup checks a group's shape: non-empty member set, no duplicate
// members, and a require count within [1, member count].
func ValidateGroup(g models.HabitGroup) error {
	if g.Name == "" {
		return errors.Validationf("group name must not be empty")
	}

	switch g.Tier {
	case models.TierMustDo, models.TierNiceToDo:
	default:
		return errors.Validationf("invalid tier %q", g.Tier)
	}

	if len(g.HabitIDs) == 0 {
		return errors.Validationf("group must have at least one member habit")
	}

	seen := make(map[string]bool, len(g.HabitIDs))
	for _, id := range g.HabitIDs {
		if seen[id] {
			return errors.Validationf("duplicate member habit id %s", id)
		}
		seen[id] = true
	}

	if g.RequireCount < 1 || g.RequireCount > len(g.HabitIDs) {
		return errors.Validationf("require count must be between 1 and %d, got %d", len(g.HabitIDs), g.RequireCount)
	}

	return nil
}

// ValidateSettings checks the settings values that have a parseable shape.
func ValidateSettings(s models.Settings) error {
	if s.Timezone != "" && s.Timezone != "Local" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return errors.Validationf("invalid timezone %q", s.Timezone)
		}
	}
	for _, clock := range []string{s.MorningReminder, s.EveningSummary} {
		if clock == "" {
			continue
		}
		if _, err := time.Parse(constants.TimeFormat, clock); err != nil {
			return errors.Validationf("invalid time %q (expected HH:MM)", clock)
		}
	}
	if s.DefaultLogDays < 0 {
		return errors.Validationf("default log days must not be negative")
	}
	return nil
}
