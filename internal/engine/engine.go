// Package engine implements the habit completion and aggregation core:
// the completion log, recurrence evaluation, streaks, group satisfaction,
// and the cross-habit good-day judgement. It owns an in-memory snapshot of
// habits, groups, and daily logs; persistence is the caller's concern via
// the storage Provider.
//
// Mutations take the write lock, so the log upsert plus streak recompute in
// SetCompletion is observed atomically by readers. Reads are pure functions
// over the current snapshot.
package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SashaSaw/Habitat-sub000/internal/criteria"
	"github.com/SashaSaw/Habitat-sub000/internal/errors"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
	"github.com/SashaSaw/Habitat-sub000/internal/validation"
)

type Engine struct {
	mu     sync.RWMutex
	habits map[string]*models.Habit
	groups map[string]*models.HabitGroup
	logs   map[string]map[string]models.DailyLog // habitID -> day -> log
	now    func() time.Time
}

// New creates an empty engine using the system clock.
func New() *Engine {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty engine with an injectable clock. Tests pin
// the clock so streak and good-day scans are deterministic.
func NewWithClock(now func() time.Time) *Engine {
	return &Engine{
		habits: make(map[string]*models.Habit),
		groups: make(map[string]*models.HabitGroup),
		logs:   make(map[string]map[string]models.DailyLog),
		now:    now,
	}
}

// Load replaces the engine snapshot with data loaded from a store.
func (e *Engine) Load(habits []models.Habit, groups []models.HabitGroup, logs []models.DailyLog) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.habits = make(map[string]*models.Habit, len(habits))
	for i := range habits {
		h := habits[i]
		e.habits[h.ID] = &h
	}
	e.groups = make(map[string]*models.HabitGroup, len(groups))
	for i := range groups {
		g := groups[i]
		e.groups[g.ID] = &g
	}
	e.logs = make(map[string]map[string]models.DailyLog)
	for _, l := range logs {
		if e.logs[l.HabitID] == nil {
			e.logs[l.HabitID] = make(map[string]models.DailyLog)
		}
		e.logs[l.HabitID][l.Day] = l
	}
}

// CreateHabitParams carries the caller-supplied fields for a new habit.
type CreateHabitParams struct {
	Name            string
	Tier            models.Tier
	Type            models.HabitType
	Recurrence      models.Recurrence
	SuccessCriteria string // free-form; canonicalized before storage
	TriggersSlip    bool
	ReminderTime    string // HH:MM, optional
	CreatedAt       time.Time
}

// CreateHabit validates the params and adds a new habit to the snapshot.
func (e *Engine) CreateHabit(p CreateHabitParams) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = e.now()
	}

	habit := models.Habit{
		ID:              uuid.New().String(),
		Name:            p.Name,
		Tier:            p.Tier,
		Type:            p.Type,
		Recurrence:      p.Recurrence,
		SuccessCriteria: criteria.Build(criteria.Parse(p.SuccessCriteria)),
		TriggersSlip:    p.TriggersSlip,
		ReminderTime:    p.ReminderTime,
		CreatedAt:       createdAt,
	}

	if err := validation.ValidateHabit(habit); err != nil {
		return models.Habit{}, err
	}

	e.habits[habit.ID] = &habit
	return habit, nil
}

// CreateGroup validates and adds an any-N-of-M group, claiming each member
// habit. Members must exist, be active, and not already belong to a group.
func (e *Engine) CreateGroup(name string, tier models.Tier, requireCount int, habitIDs []string) (models.HabitGroup, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	group := models.HabitGroup{
		ID:           uuid.New().String(),
		Name:         name,
		Tier:         tier,
		RequireCount: requireCount,
		HabitIDs:     append([]string(nil), habitIDs...),
		CreatedAt:    e.now(),
	}

	if err := validation.ValidateGroup(group); err != nil {
		return models.HabitGroup{}, err
	}

	for _, id := range habitIDs {
		h, ok := e.habits[id]
		if !ok {
			return models.HabitGroup{}, errors.NotFound("habit", id)
		}
		if !h.Active() {
			return models.HabitGroup{}, errors.Validationf("habit %q is archived and cannot join a group", h.Name)
		}
		if h.Grouped() {
			return models.HabitGroup{}, errors.Validationf("habit %q already belongs to a group", h.Name)
		}
	}

	for _, id := range habitIDs {
		e.habits[id].GroupID = group.ID
	}
	e.groups[group.ID] = &group
	return group, nil
}

// SetCompletion upserts the (habit, day) log and recomputes the habit's
// cached streaks before returning, so callers observe consistent values
// immediately. Writes dated before the habit existed are rejected.
func (e *Engine) SetCompletion(habitID string, date time.Time, completed bool) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.habits[habitID]
	if !ok {
		return models.Habit{}, errors.NotFound("habit", habitID)
	}

	day := models.DayKey(date)
	if day < models.DayKey(h.CreatedAt) {
		return models.Habit{}, errors.Validationf("cannot log %s before habit creation on %s", day, models.DayKey(h.CreatedAt))
	}

	if e.logs[habitID] == nil {
		e.logs[habitID] = make(map[string]models.DailyLog)
	}

	if existing, ok := e.logs[habitID][day]; ok {
		existing.Completed = completed
		existing.UpdatedAt = e.now()
		e.logs[habitID][day] = existing
	} else {
		e.logs[habitID][day] = models.DailyLog{
			ID:        uuid.New().String(),
			HabitID:   habitID,
			Day:       day,
			Completed: completed,
			CreatedAt: e.now(),
			UpdatedAt: e.now(),
		}
	}

	e.recomputeStreaks(h)
	return *h, nil
}

// SetLogNote attaches a note to an existing day log.
func (e *Engine) SetLogNote(habitID string, date time.Time, note string) (models.DailyLog, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := models.DayKey(date)
	l, ok := e.logs[habitID][day]
	if !ok {
		return models.DailyLog{}, errors.NotFound("log", habitID+"/"+day)
	}
	l.Note = note
	l.UpdatedAt = e.now()
	e.logs[habitID][day] = l
	return l, nil
}

// SetCriteria re-parses and canonicalizes a habit's success criteria.
func (e *Engine) SetCriteria(habitID, raw string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.habits[habitID]
	if !ok {
		return models.Habit{}, errors.NotFound("habit", habitID)
	}
	h.SuccessCriteria = criteria.Build(criteria.Parse(raw))
	return *h, nil
}

// ArchiveHabit soft-deletes a habit: it drops out of every aggregate but
// keeps its history.
func (e *Engine) ArchiveHabit(id string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.habits[id]
	if !ok {
		return models.Habit{}, errors.NotFound("habit", id)
	}
	if h.ArchivedAt == nil {
		now := e.now()
		h.ArchivedAt = &now
	}
	return *h, nil
}

// UnarchiveHabit restores an archived habit into aggregate computations.
func (e *Engine) UnarchiveHabit(id string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.habits[id]
	if !ok {
		return models.Habit{}, errors.NotFound("habit", id)
	}
	h.ArchivedAt = nil
	return *h, nil
}

// DeleteHabit hard-deletes a habit along with all of its logs and its group
// membership, as one atomic snapshot mutation.
func (e *Engine) DeleteHabit(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.habits[id]
	if !ok {
		return errors.NotFound("habit", id)
	}

	if h.GroupID != "" {
		if g, ok := e.groups[h.GroupID]; ok {
			members := g.HabitIDs[:0]
			for _, memberID := range g.HabitIDs {
				if memberID != id {
					members = append(members, memberID)
				}
			}
			g.HabitIDs = members
		}
	}

	delete(e.logs, id)
	delete(e.habits, id)
	return nil
}

// DeleteGroup removes a group and releases its members back to standalone
// evaluation. The member habits and their logs are untouched.
func (e *Engine) DeleteGroup(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.groups[id]
	if !ok {
		return errors.NotFound("group", id)
	}

	for _, memberID := range g.HabitIDs {
		if h, ok := e.habits[memberID]; ok && h.GroupID == id {
			h.GroupID = ""
		}
	}
	delete(e.groups, id)
	return nil
}

// RebuildFromHistory recomputes a habit's cached streaks from its full log
// history. The cache is strictly a memoization; this is the repair path for
// migrations or bug recovery.
func (e *Engine) RebuildFromHistory(habitID string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.habits[habitID]
	if !ok {
		return models.Habit{}, errors.NotFound("habit", habitID)
	}
	e.recomputeStreaks(h)
	return *h, nil
}

// Habit returns a copy of the habit with the given id.
func (e *Engine) Habit(id string) (models.Habit, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, ok := e.habits[id]
	if !ok {
		return models.Habit{}, errors.NotFound("habit", id)
	}
	return *h, nil
}

// HabitByName returns the habit with the given display name.
func (e *Engine) HabitByName(name string) (models.Habit, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, h := range e.habits {
		if h.Name == name {
			return *h, nil
		}
	}
	return models.Habit{}, errors.NotFound("habit", name)
}

// Habits returns all habits, ordered by creation time. Archived habits are
// included only when requested.
func (e *Engine) Habits(includeArchived bool) []models.Habit {
	e.mu.RLock()
	defer e.mu.RUnlock()

	habits := make([]models.Habit, 0, len(e.habits))
	for _, h := range e.habits {
		if !includeArchived && !h.Active() {
			continue
		}
		habits = append(habits, *h)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits
}

// Group returns a copy of the group with the given id.
func (e *Engine) Group(id string) (models.HabitGroup, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	g, ok := e.groups[id]
	if !ok {
		return models.HabitGroup{}, errors.NotFound("group", id)
	}
	return *g, nil
}

// Groups returns all groups, ordered by creation time.
func (e *Engine) Groups() []models.HabitGroup {
	e.mu.RLock()
	defer e.mu.RUnlock()

	groups := make([]models.HabitGroup, 0, len(e.groups))
	for _, g := range e.groups {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
	return groups
}

// Logs returns all day logs for a habit, ordered by day.
func (e *Engine) Logs(habitID string) []models.DailyLog {
	e.mu.RLock()
	defer e.mu.RUnlock()

	logs := make([]models.DailyLog, 0, len(e.logs[habitID]))
	for _, l := range e.logs[habitID] {
		logs = append(logs, l)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Day < logs[j].Day })
	return logs
}

// Log returns the day log for (habit, date), if one exists.
func (e *Engine) Log(habitID string, date time.Time) (models.DailyLog, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	day := models.DayKey(date)
	l, ok := e.logs[habitID][day]
	if !ok {
		return models.DailyLog{}, errors.NotFound("log", habitID+"/"+day)
	}
	return l, nil
}

// AllLogs returns every day log in the snapshot, for persistence.
func (e *Engine) AllLogs() []models.DailyLog {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var logs []models.DailyLog
	for _, byDay := range e.logs {
		for _, l := range byDay {
			logs = append(logs, l)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Day != logs[j].Day {
			return logs[i].Day < logs[j].Day
		}
		return logs[i].HabitID < logs[j].HabitID
	})
	return logs
}

// IsCompleted reports whether the habit has a completed log for the date.
func (e *Engine) IsCompleted(habitID string, date time.Time) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.completedOn(habitID, models.DayKey(date))
}

// completedOn is the lock-free core of IsCompleted.
func (e *Engine) completedOn(habitID, day string) bool {
	l, ok := e.logs[habitID][day]
	return ok && l.Completed
}

// firstCompletion returns the day of the habit's earliest completed log,
// or "" if it has never been completed.
func (e *Engine) firstCompletion(habitID string) string {
	first := ""
	for day, l := range e.logs[habitID] {
		if !l.Completed {
			continue
		}
		if first == "" || day < first {
			first = day
		}
	}
	return first
}
