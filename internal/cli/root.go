package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/engine"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
	"github.com/SashaSaw/Habitat-sub000/internal/storage"
)

// Context carries the wiring shared by every command: the storage provider
// and a lazily built engine snapshot of its contents.
type Context struct {
	Store storage.Provider

	engine *engine.Engine
}

func NewContext(store storage.Provider) *Context {
	return &Context{Store: store}
}

// Engine returns the in-memory snapshot, loading it from storage on first
// use. Mutating commands persist engine results back through Store.
func (c *Context) Engine() (*engine.Engine, error) {
	if c.engine != nil {
		return c.engine, nil
	}

	eng := engine.New()
	if err := loadInto(eng, c.Store); err != nil {
		return nil, err
	}
	c.engine = eng
	return eng, nil
}

// Reload rebuilds the engine snapshot from storage. The reminder daemon
// uses this to pick up edits made by other runs.
func (c *Context) Reload() error {
	eng, err := c.Engine()
	if err != nil {
		return err
	}
	return loadInto(eng, c.Store)
}

func loadInto(eng *engine.Engine, store storage.Provider) error {
	habits, err := store.GetAllHabits(true)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	groups, err := store.GetAllGroups()
	if err != nil {
		return fmt.Errorf("failed to load groups: %w", err)
	}
	logs, err := store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to load logs: %w", err)
	}
	eng.Load(habits, groups, logs)
	return nil
}

// ResolveHabit finds a habit by display name, archived ones included.
func (c *Context) ResolveHabit(name string) (models.Habit, error) {
	eng, err := c.Engine()
	if err != nil {
		return models.Habit{}, err
	}
	h, err := eng.HabitByName(name)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %q not found", name)
	}
	return h, nil
}

// ResolveGroup finds a group by display name.
func (c *Context) ResolveGroup(name string) (models.HabitGroup, error) {
	eng, err := c.Engine()
	if err != nil {
		return models.HabitGroup{}, err
	}
	for _, g := range eng.Groups() {
		if g.Name == name {
			return g, nil
		}
	}
	return models.HabitGroup{}, fmt.Errorf("group %q not found", name)
}

// ParseDate resolves an optional YYYY-MM-DD flag, defaulting to today.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := models.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseRecurrence parses the --recur flag: "daily", "once", "weekly:N",
// "monthly:N".
func ParseRecurrence(s string) (models.Recurrence, error) {
	name, target, hasTarget := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")

	rec := models.Recurrence{Type: models.RecurrenceType(name)}
	switch rec.Type {
	case models.RecurrenceDaily, models.RecurrenceOnce:
		if hasTarget {
			return models.Recurrence{}, fmt.Errorf("%s recurrence takes no target", name)
		}
	case models.RecurrenceWeekly, models.RecurrenceMonthly:
		if !hasTarget {
			rec.Target = 1
			break
		}
		n, err := strconv.Atoi(target)
		if err != nil {
			return models.Recurrence{}, fmt.Errorf("invalid recurrence target: %s", target)
		}
		rec.Target = n
	default:
		return models.Recurrence{}, fmt.Errorf("invalid recurrence: %s (expected daily, weekly[:N], monthly[:N], or once)", s)
	}
	return rec, nil
}

// FormatRecurrence renders a recurrence rule for listings.
func FormatRecurrence(rec models.Recurrence) string {
	switch rec.Type {
	case models.RecurrenceDaily:
		return "daily"
	case models.RecurrenceWeekly:
		return fmt.Sprintf("%dx/week", rec.Target)
	case models.RecurrenceMonthly:
		return fmt.Sprintf("%dx/month", rec.Target)
	case models.RecurrenceOnce:
		return "once"
	default:
		return "unknown"
	}
}
