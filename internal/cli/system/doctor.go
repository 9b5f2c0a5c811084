package system

import (
	"fmt"

	"github.com/SashaSaw/Habitat-sub000/internal/cli"
	"github.com/SashaSaw/Habitat-sub000/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Repair problems that can be fixed automatically."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: storage reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		fmt.Println("\nStorage is not reachable; remaining checks skipped.")
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Printf("✓ Storage reachable: OK\n")

	// Check 2: settings valid
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		fmt.Printf("❌ Settings readable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else if err := validation.ValidateSettings(settings); err != nil {
		fmt.Printf("❌ Settings valid: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Settings valid: OK\n")
	}

	eng, err := ctx.Engine()
	if err != nil {
		fmt.Printf("❌ Data loadable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		return fmt.Errorf("diagnostics found problems")
	}

	// Check 3: group membership consistent both ways
	memberProblems := 0
	for _, g := range eng.Groups() {
		for _, memberID := range g.HabitIDs {
			h, err := eng.Habit(memberID)
			if err != nil {
				fmt.Printf("❌ Group %q references missing habit %s\n", g.Name, memberID)
				memberProblems++
				continue
			}
			if h.GroupID != g.ID {
				fmt.Printf("❌ Habit %q does not point back at group %q\n", h.Name, g.Name)
				memberProblems++
			}
		}
	}
	if memberProblems == 0 {
		fmt.Printf("✓ Group membership: OK\n")
	} else {
		hasError = true
	}

	// Check 4: cached streaks match log history
	staleStreaks := 0
	for _, h := range eng.Habits(true) {
		rebuilt, err := eng.RebuildFromHistory(h.ID)
		if err != nil {
			return err
		}
		if rebuilt.CurrentStreak == h.CurrentStreak && rebuilt.BestStreak == h.BestStreak {
			continue
		}
		staleStreaks++
		if cmd.Fix {
			if err := ctx.Store.UpdateHabit(rebuilt); err != nil {
				return fmt.Errorf("failed to repair streaks for %q: %w", h.Name, err)
			}
			fmt.Printf("  Repaired streak cache for %q (%d/%d -> %d/%d)\n",
				h.Name, h.CurrentStreak, h.BestStreak, rebuilt.CurrentStreak, rebuilt.BestStreak)
		} else {
			fmt.Printf("❌ Stale streak cache for %q: stored %d/%d, history says %d/%d\n",
				h.Name, h.CurrentStreak, h.BestStreak, rebuilt.CurrentStreak, rebuilt.BestStreak)
		}
	}
	switch {
	case staleStreaks == 0:
		fmt.Printf("✓ Streak caches: OK\n")
	case cmd.Fix:
		fmt.Printf("✓ Streak caches: repaired %d habit(s)\n", staleStreaks)
	default:
		fmt.Printf("   Run 'habitat doctor --fix' to rebuild from history.\n")
		hasError = true
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics found problems.")
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed!")
	return nil
}
