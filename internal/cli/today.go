package cli

import (
	"fmt"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/engine"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
	"github.com/SashaSaw/Habitat-sub000/internal/reminder"
)

type TodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *TodayCmd) Run(ctx *Context) error {
	date, err := ParseDate(c.Date)
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	habits := eng.Habits(false)
	if len(habits) == 0 && len(eng.Groups()) == 0 {
		fmt.Println("No habits found. Add one with 'habitat habit add'.")
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", models.DayKey(date))

	printTier(eng, date, models.TierMustDo, "Must-do")
	printTier(eng, date, models.TierNiceToDo, "Nice-to-do")

	if eng.IsGoodDay(date) {
		fmt.Printf("\n%s Good-day streak: %s\n",
			DoneStyle.Render("Good day!"),
			reminder.FormatStreak(eng.CurrentGoodDayStreak()))
	} else {
		fmt.Printf("\n%s\n", WarnStyle.Render("Not a good day yet."))
	}
	return nil
}

func printTier(eng *engine.Engine, date time.Time, tier models.Tier, label string) {
	var lines []string

	for _, h := range eng.Habits(false) {
		if h.Tier != tier || h.Grouped() {
			continue
		}
		if line, ok := habitLine(eng, h, date); ok {
			lines = append(lines, line)
		}
	}
	for _, g := range eng.Groups() {
		if g.Tier != tier {
			continue
		}
		lines = append(lines, groupLines(eng, g, date)...)
	}

	if len(lines) == 0 {
		return
	}
	fmt.Println(HeaderStyle.Render(label + ":"))
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Println()
}

func habitLine(eng *engine.Engine, h models.Habit, date time.Time) (string, bool) {
	applicable, err := eng.IsApplicable(h.ID, date)
	if err != nil || !applicable {
		return "", false
	}
	done := eng.IsCompleted(h.ID, date)

	if h.Type == models.HabitNegative {
		if done {
			return "  " + MissedStyle.Render("[slipped]") + " " + h.Name, true
		}
		return "  " + MutedStyle.Render("[avoid]") + "   " + h.Name, true
	}

	box := "[ ]"
	if done {
		box = DoneStyle.Render("[x]")
	}
	line := fmt.Sprintf("  %s %s", box, h.Name)
	if h.SuccessCriteria != "" {
		line += " " + MutedStyle.Render("("+h.SuccessCriteria+")")
	}
	return line, true
}

func groupLines(eng *engine.Engine, g models.HabitGroup, date time.Time) []string {
	count, err := eng.CompletedCount(g.ID, date)
	if err != nil {
		return nil
	}
	satisfied, _ := eng.GroupSatisfied(g.ID, date)

	box := "[ ]"
	if satisfied {
		box = DoneStyle.Render("[x]")
	}
	lines := []string{fmt.Sprintf("  %s %s (%d of %d)", box, g.Name, count, g.RequireCount)}

	for _, memberID := range g.HabitIDs {
		h, err := eng.Habit(memberID)
		if err != nil || !h.Active() {
			continue
		}
		mark := MutedStyle.Render("-")
		if eng.IsCompleted(h.ID, date) {
			mark = DoneStyle.Render("x")
		}
		lines = append(lines, fmt.Sprintf("      %s %s", mark, h.Name))
	}
	return lines
}
