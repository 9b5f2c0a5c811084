package engine

import (
	"testing"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/errors"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

// fixedNow pins the engine clock to noon on the given day so streak and
// good-day scans are deterministic.
func fixedNow(t *testing.T, day string) func() time.Time {
	t.Helper()
	d, err := models.ParseDay(day)
	if err != nil {
		t.Fatalf("bad test day %q: %v", day, err)
	}
	d = d.Add(12 * time.Hour)
	return func() time.Time { return d }
}

func testDay(t *testing.T, day string) time.Time {
	t.Helper()
	d, err := models.ParseDay(day)
	if err != nil {
		t.Fatalf("bad test day %q: %v", day, err)
	}
	return d
}

func addHabit(t *testing.T, e *Engine, p CreateHabitParams) models.Habit {
	t.Helper()
	h, err := e.CreateHabit(p)
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	return h
}

func complete(t *testing.T, e *Engine, habitID, day string) {
	t.Helper()
	if _, err := e.SetCompletion(habitID, testDay(t, day), true); err != nil {
		t.Fatalf("SetCompletion(%s, %s): %v", habitID, day, err)
	}
}

func dailyMustDo(name, createdDay string, t *testing.T) CreateHabitParams {
	return CreateHabitParams{
		Name:       name,
		Tier:       models.TierMustDo,
		Type:       models.HabitPositive,
		Recurrence: models.Recurrence{Type: models.RecurrenceDaily},
		CreatedAt:  testDay(t, createdDay),
	}
}

func TestSetCompletion_UpsertsSingleLogPerDay(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, dailyMustDo("Read", "2026-03-01", t))

	complete(t, e, h.ID, "2026-03-06")
	complete(t, e, h.ID, "2026-03-06")

	logs := e.Logs(h.ID)
	if len(logs) != 1 {
		t.Fatalf("expected a single log for the day, got %d", len(logs))
	}
	if !logs[0].Completed {
		t.Error("log should be completed")
	}

	// Toggling off updates the same log in place.
	if _, err := e.SetCompletion(h.ID, testDay(t, "2026-03-06"), false); err != nil {
		t.Fatalf("SetCompletion: %v", err)
	}
	logs2 := e.Logs(h.ID)
	if len(logs2) != 1 || logs2[0].Completed {
		t.Errorf("expected the same log toggled off, got %+v", logs2)
	}
	if logs2[0].ID != logs[0].ID {
		t.Error("upsert must preserve the log identity")
	}
}

func TestSetCompletion_Idempotent(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, dailyMustDo("Read", "2026-03-01", t))

	first, err := e.SetCompletion(h.ID, testDay(t, "2026-03-06"), true)
	if err != nil {
		t.Fatalf("SetCompletion: %v", err)
	}
	second, err := e.SetCompletion(h.ID, testDay(t, "2026-03-06"), true)
	if err != nil {
		t.Fatalf("SetCompletion: %v", err)
	}

	if first.CurrentStreak != second.CurrentStreak || first.BestStreak != second.BestStreak {
		t.Errorf("repeated completion changed streaks: %+v vs %+v", first, second)
	}
	if len(e.Logs(h.ID)) != 1 {
		t.Error("repeated completion must not add logs")
	}
}

func TestSetCompletion_RejectsBeforeCreation(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, dailyMustDo("Read", "2026-03-01", t))

	_, err := e.SetCompletion(h.ID, testDay(t, "2026-02-28"), true)
	if !errors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(e.Logs(h.ID)) != 0 {
		t.Error("rejected write must not leave a log")
	}
}

func TestSetCompletion_UnknownHabit(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	_, err := e.SetCompletion("missing", testDay(t, "2026-03-06"), true)
	if !errors.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestSetCompletion_RecomputesStreaksBeforeReturning(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, dailyMustDo("Read", "2026-03-01", t))

	updated, err := e.SetCompletion(h.ID, testDay(t, "2026-03-06"), true)
	if err != nil {
		t.Fatalf("SetCompletion: %v", err)
	}
	if updated.CurrentStreak != 1 || updated.BestStreak != 1 {
		t.Errorf("expected streaks 1/1 on the returned habit, got %d/%d", updated.CurrentStreak, updated.BestStreak)
	}

	cached, err := e.Habit(h.ID)
	if err != nil {
		t.Fatalf("Habit: %v", err)
	}
	if cached.CurrentStreak != 1 || cached.BestStreak != 1 {
		t.Errorf("cached streaks not updated: %d/%d", cached.CurrentStreak, cached.BestStreak)
	}
}

func TestCreateHabit_CanonicalizesCriteria(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, CreateHabitParams{
		Name:            "💧 Drink water",
		Tier:            models.TierMustDo,
		Type:            models.HabitPositive,
		Recurrence:      models.Recurrence{Type: models.RecurrenceDaily},
		SuccessCriteria: "2-3L, by 7:00AM",
	})
	if h.SuccessCriteria != "2-3 litres, by 7:00am" {
		t.Errorf("criteria not canonicalized: %q", h.SuccessCriteria)
	}
}

func TestCreateHabit_Invalid(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	_, err := e.CreateHabit(CreateHabitParams{
		Name:       "Run",
		Tier:       models.TierMustDo,
		Type:       models.HabitPositive,
		Recurrence: models.Recurrence{Type: models.RecurrenceWeekly, Target: 9},
	})
	if !errors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(e.Habits(true)) != 0 {
		t.Error("failed creation must not add a habit")
	}
}

func TestArchiveHabit_ExcludedFromAggregatesKeepsHistory(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, dailyMustDo("Read", "2026-03-01", t))
	complete(t, e, h.ID, "2026-03-05")

	if e.IsGoodDay(testDay(t, "2026-03-06")) {
		t.Fatal("undone must-do should block the good day")
	}

	if _, err := e.ArchiveHabit(h.ID); err != nil {
		t.Fatalf("ArchiveHabit: %v", err)
	}

	if !e.IsGoodDay(testDay(t, "2026-03-06")) {
		t.Error("archived habit must not block the good day")
	}
	if len(e.Logs(h.ID)) != 1 {
		t.Error("archiving must retain history")
	}
	if len(e.Habits(false)) != 0 {
		t.Error("archived habit should be hidden by default")
	}
	if len(e.Habits(true)) != 1 {
		t.Error("archived habit should be listed when included")
	}
}

func TestDeleteHabit_RemovesLogsAndGroupMembership(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	a := addHabit(t, e, dailyMustDo("A", "2026-03-01", t))
	b := addHabit(t, e, dailyMustDo("B", "2026-03-01", t))
	g, err := e.CreateGroup("Pair", models.TierMustDo, 1, []string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	complete(t, e, a.ID, "2026-03-05")

	if err := e.DeleteHabit(a.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}

	if _, err := e.Habit(a.ID); !errors.IsNotFound(err) {
		t.Error("deleted habit should be gone")
	}
	if len(e.Logs(a.ID)) != 0 {
		t.Error("deleted habit's logs should be gone")
	}
	group, err := e.Group(g.ID)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(group.HabitIDs) != 1 || group.HabitIDs[0] != b.ID {
		t.Errorf("group membership not cleaned up: %v", group.HabitIDs)
	}
}

func TestDeleteGroup_ReleasesMembers(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	a := addHabit(t, e, dailyMustDo("A", "2026-03-01", t))
	g, err := e.CreateGroup("Solo", models.TierMustDo, 1, []string{a.ID})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	if err := e.DeleteGroup(g.ID); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}

	got, err := e.Habit(a.ID)
	if err != nil {
		t.Fatalf("Habit: %v", err)
	}
	if got.Grouped() {
		t.Error("member should be released on group deletion")
	}
	if len(e.Logs(a.ID)) != 0 {
		t.Error("unexpected logs")
	}
}

func TestCreateGroup_ReferentialChecks(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	a := addHabit(t, e, dailyMustDo("A", "2026-03-01", t))

	if _, err := e.CreateGroup("G", models.TierMustDo, 1, []string{a.ID, "ghost"}); !errors.IsNotFound(err) {
		t.Errorf("expected NotFoundError for unknown member, got %v", err)
	}

	if _, err := e.CreateGroup("G", models.TierMustDo, 2, []string{a.ID}); !errors.IsValidation(err) {
		t.Errorf("expected ValidationError for require count above size, got %v", err)
	}

	if _, err := e.CreateGroup("G", models.TierMustDo, 1, []string{a.ID}); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	// Already grouped habits cannot be claimed twice.
	if _, err := e.CreateGroup("G2", models.TierMustDo, 1, []string{a.ID}); !errors.IsValidation(err) {
		t.Errorf("expected ValidationError for double membership, got %v", err)
	}
}

func TestRebuildFromHistory_RepairsDivergedCache(t *testing.T) {
	e := NewWithClock(fixedNow(t, "2026-03-06"))
	h := addHabit(t, e, dailyMustDo("Read", "2026-03-01", t))
	complete(t, e, h.ID, "2026-03-05")
	complete(t, e, h.ID, "2026-03-06")

	// Simulate a diverged cache, as after a bad migration.
	e.mu.Lock()
	e.habits[h.ID].CurrentStreak = 99
	e.habits[h.ID].BestStreak = 0
	e.mu.Unlock()

	repaired, err := e.RebuildFromHistory(h.ID)
	if err != nil {
		t.Fatalf("RebuildFromHistory: %v", err)
	}
	if repaired.CurrentStreak != 2 || repaired.BestStreak != 2 {
		t.Errorf("expected 2/2 after repair, got %d/%d", repaired.CurrentStreak, repaired.BestStreak)
	}
}
