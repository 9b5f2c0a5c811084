package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/cli"
	"github.com/SashaSaw/Habitat-sub000/internal/engine"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Mark     HabitMarkCmd     `cmd:"" help:"Mark a habit done (or undone) for a day."`
	Criteria HabitCriteriaCmd `cmd:"" help:"Set a habit's success criteria."`
	Log      HabitLogCmd      `cmd:"" help:"Show habit history as an ASCII grid."`
	Archive  HabitArchiveCmd  `cmd:"" help:"Archive a habit (keeps history)."`
	Restore  HabitRestoreCmd  `cmd:"" help:"Restore an archived habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Name         string `arg:"" help:"Habit name."`
	Tier         string `help:"Tier: must_do or nice_to_do." default:"must_do"`
	Negative     bool   `help:"Track as a habit to avoid rather than perform."`
	Recur        string `help:"Recurrence: daily, weekly[:N], monthly[:N], or once." default:"daily"`
	Criteria     string `help:"Success criteria, e.g. '2-3L, by 7:00am'."`
	TriggersSlip bool   `help:"A completion of this negative habit breaks streak-adjacent surfaces."`
	Remind       string `help:"Per-habit reminder time (HH:MM)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	if _, err := eng.HabitByName(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	rec, err := cli.ParseRecurrence(c.Recur)
	if err != nil {
		return err
	}

	habitType := models.HabitPositive
	if c.Negative {
		habitType = models.HabitNegative
	}

	habit, err := eng.CreateHabit(engine.CreateHabitParams{
		Name:            c.Name,
		Tier:            models.Tier(c.Tier),
		Type:            habitType,
		Recurrence:      rec,
		SuccessCriteria: c.Criteria,
		TriggersSlip:    c.TriggersSlip,
		ReminderTime:    c.Remind,
	})
	if err != nil {
		return err
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Name, cli.FormatRecurrence(habit.Recurrence))
	if habit.SuccessCriteria != "" {
		fmt.Printf("Criteria: %s\n", habit.SuccessCriteria)
	}
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	habits := eng.Habits(c.Archived)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		var notes []string
		notes = append(notes, string(h.Tier), cli.FormatRecurrence(h.Recurrence))
		if h.Type == models.HabitNegative {
			notes = append(notes, "avoid")
		}
		if h.SuccessCriteria != "" {
			notes = append(notes, h.SuccessCriteria)
		}
		if h.Grouped() {
			if g, err := eng.Group(h.GroupID); err == nil {
				notes = append(notes, "group: "+g.Name)
			}
		}

		line := fmt.Sprintf("%s  %s", h.Name, cli.MutedStyle.Render("["+strings.Join(notes, ", ")+"]"))
		if h.ArchivedAt != nil {
			line += " " + cli.WarnStyle.Render("[ARCHIVED]")
		}
		fmt.Println(line)
	}
	return nil
}

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Undo bool   `help:"Mark the day as not done instead."`
	Note string `help:"Optional note for this entry." default:""`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}
	date, err := cli.ParseDate(c.Date)
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	habit, err = eng.SetCompletion(habit.ID, date, !c.Undo)
	if err != nil {
		return err
	}
	log, err := eng.Log(habit.ID, date)
	if err != nil {
		return err
	}
	if c.Note != "" {
		if log, err = eng.SetLogNote(habit.ID, date, c.Note); err != nil {
			return err
		}
	}

	if err := ctx.Store.UpsertLog(log); err != nil {
		return err
	}
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	day := models.DayKey(date)
	if c.Undo {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Name, day)
	} else {
		fmt.Printf("Marked habit %q for %s\n", habit.Name, day)
	}
	return nil
}

type HabitCriteriaCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Criteria string `arg:"" help:"New success criteria (empty clears)."`
}

func (c *HabitCriteriaCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	habit, err = eng.SetCriteria(habit.ID, c.Criteria)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	if habit.SuccessCriteria == "" {
		fmt.Printf("Cleared criteria for %q\n", habit.Name)
	} else {
		fmt.Printf("Criteria for %q: %s\n", habit.Name, habit.SuccessCriteria)
	}
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show (default: from settings)."`
	Habit string `help:"Show log for a specific habit only."`
}

const maxNameLen = 20

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		days = settings.DefaultLogDays
	}

	var habits []models.Habit
	if c.Habit != "" {
		h, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	} else {
		habits = eng.Habits(false)
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", days)

	fmt.Printf("%-*s", maxNameLen, "Habit")
	for i := 0; i < days; i++ {
		fmt.Printf(" %5s", start.AddDate(0, 0, i).Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", maxNameLen+6*days))

	for _, h := range habits {
		name := h.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}
		fmt.Printf("%-*s", maxNameLen, name)

		for i := 0; i < days; i++ {
			day := start.AddDate(0, 0, i)
			switch {
			case day.Before(h.CreatedAt) && models.DayKey(day) != models.DayKey(h.CreatedAt):
				fmt.Print("      ")
			case eng.IsCompleted(h.ID, day):
				fmt.Print("  x   ")
			default:
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}
	return nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name to archive."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	habit, err = eng.ArchiveHabit(habit.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Archived habit: %s\n", habit.Name)
	fmt.Println("(History is kept. Use 'habitat habit restore' to bring it back)")
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}
	if habit.ArchivedAt == nil {
		return fmt.Errorf("habit %q is not archived", habit.Name)
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	habit, err = eng.UnarchiveHabit(habit.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Name)
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	groupID := habit.GroupID
	if err := eng.DeleteHabit(habit.ID); err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	// The habit may have been a group member; the group row keeps its own
	// member list in storage, so rewrite it.
	if groupID != "" {
		if group, err := eng.Group(groupID); err == nil {
			if err := ctx.Store.UpdateGroup(group); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Deleted habit: %s (history removed)\n", habit.Name)
	return nil
}
