package engine

import (
	"testing"

	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

func TestIsSatisfied_WeeklyTarget(t *testing.T) {
	// Week under test: Mon 2026-03-02 .. Sun 2026-03-08, today Fri.
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, CreateHabitParams{
		Name:       "🏃 Run",
		Tier:       models.TierMustDo,
		Type:       models.HabitPositive,
		Recurrence: models.Recurrence{Type: models.RecurrenceWeekly, Target: 3},
		CreatedAt:  testDay(t, "2026-03-02"),
	})

	complete(t, e, h.ID, "2026-03-02") // Mon
	complete(t, e, h.ID, "2026-03-04") // Wed

	ok, err := e.IsSatisfied(h.ID, testDay(t, "2026-03-06"))
	if err != nil {
		t.Fatalf("IsSatisfied: %v", err)
	}
	if ok {
		t.Error("2 of 3 completions should not satisfy the week")
	}

	complete(t, e, h.ID, "2026-03-06") // Fri

	ok, err = e.IsSatisfied(h.ID, testDay(t, "2026-03-06"))
	if err != nil {
		t.Fatalf("IsSatisfied: %v", err)
	}
	if !ok {
		t.Error("3 of 3 completions should satisfy the week")
	}

	// Any date within the same ISO week evaluates the same period.
	ok, _ = e.IsSatisfied(h.ID, testDay(t, "2026-03-08"))
	if !ok {
		t.Error("satisfaction should hold for the Sunday of the same week")
	}
	// The following Monday starts a fresh, unsatisfied week.
	ok, _ = e.IsSatisfied(h.ID, testDay(t, "2026-03-09"))
	if ok {
		t.Error("next week should not inherit satisfaction")
	}
}

func TestIsSatisfied_WeeklyMidWeekCreation(t *testing.T) {
	// Created Thursday: only Thu..Sun count toward that week's target.
	e := NewWithClock(fixedNow(t, "2026-03-07"))
	h := addHabit(t, e, CreateHabitParams{
		Name:       "Stretch",
		Tier:       models.TierMustDo,
		Type:       models.HabitPositive,
		Recurrence: models.Recurrence{Type: models.RecurrenceWeekly, Target: 2},
		CreatedAt:  testDay(t, "2026-03-05"),
	})

	complete(t, e, h.ID, "2026-03-05") // Thu
	complete(t, e, h.ID, "2026-03-06") // Fri

	ok, err := e.IsSatisfied(h.ID, testDay(t, "2026-03-07"))
	if err != nil {
		t.Fatalf("IsSatisfied: %v", err)
	}
	if !ok {
		t.Error("two completions since creation should meet the target")
	}
}

func TestIsSatisfied_Monthly(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-20"))
	h := addHabit(t, e, CreateHabitParams{
		Name:       "Budget review",
		Tier:       models.TierMustDo,
		Type:       models.HabitPositive,
		Recurrence: models.Recurrence{Type: models.RecurrenceMonthly, Target: 2},
		CreatedAt:  testDay(t, "2026-01-01"),
	})

	complete(t, e, h.ID, "2026-03-03")

	if ok, _ := e.IsSatisfied(h.ID, testDay(t, "2026-03-20")); ok {
		t.Error("1 of 2 completions should not satisfy the month")
	}

	complete(t, e, h.ID, "2026-03-15")

	if ok, _ := e.IsSatisfied(h.ID, testDay(t, "2026-03-20")); !ok {
		t.Error("2 of 2 completions should satisfy the month")
	}
	if ok, _ := e.IsSatisfied(h.ID, testDay(t, "2026-02-15")); ok {
		t.Error("February has no completions and must not be satisfied")
	}
}

func TestIsApplicable_BeforeCreation(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, dailyMustDo("Read", "2026-03-03", t))

	if ok, _ := e.IsApplicable(h.ID, testDay(t, "2026-03-02")); ok {
		t.Error("habit must not be applicable before creation")
	}
	if ok, _ := e.IsApplicable(h.ID, testDay(t, "2026-03-03")); !ok {
		t.Error("habit should be applicable on its creation day")
	}
}

func TestIsApplicable_OnceUntilFirstCompletion(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, CreateHabitParams{
		Name:       "File taxes",
		Tier:       models.TierMustDo,
		Type:       models.HabitPositive,
		Recurrence: models.Recurrence{Type: models.RecurrenceOnce},
		CreatedAt:  testDay(t, "2026-03-01"),
	})

	if ok, _ := e.IsApplicable(h.ID, testDay(t, "2026-03-02")); !ok {
		t.Error("pending once task should be applicable")
	}

	complete(t, e, h.ID, "2026-03-04")

	if ok, _ := e.IsApplicable(h.ID, testDay(t, "2026-03-04")); !ok {
		t.Error("completion day itself should stay applicable")
	}
	if ok, _ := e.IsApplicable(h.ID, testDay(t, "2026-03-05")); ok {
		t.Error("once task must not be applicable after first completion")
	}
	if ok, _ := e.IsSatisfied(h.ID, testDay(t, "2026-03-06")); !ok {
		t.Error("a single success satisfies a once task permanently")
	}
}
