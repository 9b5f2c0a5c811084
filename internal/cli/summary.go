package cli

import (
	"fmt"

	"github.com/SashaSaw/Habitat-sub000/internal/reminder"
)

type SummaryCmd struct {
	Days int `help:"Window size in days." default:"30"`
}

func (c *SummaryCmd) Run(ctx *Context) error {
	if c.Days < 1 {
		return fmt.Errorf("window must be at least 1 day")
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	habits := eng.Habits(false)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Println(HeaderStyle.Render(fmt.Sprintf("Last %d days:", c.Days)))
	fmt.Printf("  Good days:       %.0f%%\n", eng.GoodDayRate(c.Days)*100)
	fmt.Printf("  Good-day streak: %s\n\n", reminder.FormatStreak(eng.CurrentGoodDayStreak()))

	fmt.Println(HeaderStyle.Render("Habits:"))
	for _, h := range habits {
		rate, err := eng.CompletionRate(h.ID, c.Days)
		if err != nil {
			return err
		}
		fmt.Printf("  %-24s %-10s %3.0f%%  streak %s (best %s)\n",
			truncate(h.Name, 24),
			FormatRecurrence(h.Recurrence),
			rate*100,
			reminder.FormatStreak(h.CurrentStreak),
			reminder.FormatStreak(h.BestStreak))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
