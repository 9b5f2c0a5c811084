package habits

import (
	"path/filepath"
	"testing"

	"github.com/SashaSaw/Habitat-sub000/internal/cli"
	"github.com/SashaSaw/Habitat-sub000/internal/storage"
)

func testContext(t *testing.T) *cli.Context {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habitat.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return cli.NewContext(store)
}

func TestHabitAddPersists(t *testing.T) {
	ctx := testContext(t)

	add := &HabitAddCmd{Name: "Drink water", Recur: "daily", Tier: "must_do", Criteria: "2-3L, by 7am"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("GetAllHabits() failed: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("stored %d habits, want 1", len(habits))
	}
	if habits[0].Name != "Drink water" {
		t.Errorf("name = %q, want %q", habits[0].Name, "Drink water")
	}
	// Criteria are canonicalized before they land in storage.
	if habits[0].SuccessCriteria != "2-3 litres, by 7:00am" {
		t.Errorf("criteria = %q, want canonical form", habits[0].SuccessCriteria)
	}
}

func TestHabitAddRejectsDuplicateName(t *testing.T) {
	ctx := testContext(t)

	add := &HabitAddCmd{Name: "Read", Recur: "daily", Tier: "must_do"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	if err := add.Run(ctx); err == nil {
		t.Error("adding a habit with a duplicate name should fail")
	}
}

func TestHabitAddRejectsInvalidRecurrence(t *testing.T) {
	ctx := testContext(t)

	add := &HabitAddCmd{Name: "Run", Recur: "weekly:9", Tier: "must_do"}
	if err := add.Run(ctx); err == nil {
		t.Error("weekly target above 7 should be rejected")
	}
}

func TestHabitMarkUpdatesStreakAndLog(t *testing.T) {
	ctx := testContext(t)

	add := &HabitAddCmd{Name: "Stretch", Recur: "daily", Tier: "must_do"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	mark := &HabitMarkCmd{Name: "Stretch", Note: "felt good"}
	if err := mark.Run(ctx); err != nil {
		t.Fatalf("habit mark failed: %v", err)
	}

	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("GetAllHabits() failed: %v", err)
	}
	if habits[0].CurrentStreak != 1 {
		t.Errorf("persisted streak = %d, want 1", habits[0].CurrentStreak)
	}

	logs, err := ctx.Store.GetLogsForHabit(habits[0].ID)
	if err != nil {
		t.Fatalf("GetLogsForHabit() failed: %v", err)
	}
	if len(logs) != 1 || !logs[0].Completed {
		t.Fatalf("logs = %+v, want one completed entry", logs)
	}
	if logs[0].Note != "felt good" {
		t.Errorf("note = %q, want %q", logs[0].Note, "felt good")
	}

	// Undo flips the same log rather than adding a second one.
	undo := &HabitMarkCmd{Name: "Stretch", Undo: true}
	if err := undo.Run(ctx); err != nil {
		t.Fatalf("habit mark --undo failed: %v", err)
	}
	logs, err = ctx.Store.GetLogsForHabit(habits[0].ID)
	if err != nil {
		t.Fatalf("GetLogsForHabit() failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Completed {
		t.Fatalf("after undo logs = %+v, want one uncompleted entry", logs)
	}
}

func TestHabitArchiveAndRestore(t *testing.T) {
	ctx := testContext(t)

	add := &HabitAddCmd{Name: "Journal", Recur: "daily", Tier: "nice_to_do"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	if err := (&HabitArchiveCmd{Name: "Journal"}).Run(ctx); err != nil {
		t.Fatalf("habit archive failed: %v", err)
	}
	visible, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("GetAllHabits() failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("archived habit still visible: %d habits", len(visible))
	}

	if err := (&HabitRestoreCmd{Name: "Journal"}).Run(ctx); err != nil {
		t.Fatalf("habit restore failed: %v", err)
	}
	visible, err = ctx.Store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("GetAllHabits() failed: %v", err)
	}
	if len(visible) != 1 {
		t.Errorf("restored habit not visible: %d habits", len(visible))
	}

	// Restoring an active habit is an error.
	if err := (&HabitRestoreCmd{Name: "Journal"}).Run(ctx); err == nil {
		t.Error("restoring an active habit should fail")
	}
}

func TestHabitDeleteRemovesHistory(t *testing.T) {
	ctx := testContext(t)

	add := &HabitAddCmd{Name: "Run", Recur: "daily", Tier: "must_do"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	if err := (&HabitMarkCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatalf("habit mark failed: %v", err)
	}

	habits, _ := ctx.Store.GetAllHabits(false)
	id := habits[0].ID

	if err := (&HabitDeleteCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	if _, err := ctx.Store.GetHabit(id); err == nil {
		t.Error("deleted habit still in storage")
	}
	logs, err := ctx.Store.GetLogsForHabit(id)
	if err != nil {
		t.Fatalf("GetLogsForHabit() failed: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("deleted habit left %d logs behind", len(logs))
	}
}
