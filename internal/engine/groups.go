package engine

import (
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/errors"
	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

// CompletedCount returns how many of the group's member habits are
// completed on the given date. Archived or missing members are excluded
// from the count; that exclusion is deliberate robustness, not error
// suppression.
func (e *Engine) CompletedCount(groupID string, date time.Time) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	g, ok := e.groups[groupID]
	if !ok {
		return 0, errors.NotFound("group", groupID)
	}
	return e.groupCompletedCount(g, date), nil
}

// GroupSatisfied reports whether at least RequireCount members are
// completed on the date. A group whose members are all archived or deleted
// is never vacuously satisfied.
func (e *Engine) GroupSatisfied(groupID string, date time.Time) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	g, ok := e.groups[groupID]
	if !ok {
		return false, errors.NotFound("group", groupID)
	}
	return e.groupSatisfied(g, date), nil
}

func (e *Engine) groupCompletedCount(g *models.HabitGroup, date time.Time) int {
	day := models.DayKey(date)
	count := 0
	for _, id := range g.HabitIDs {
		h, ok := e.habits[id]
		if !ok || !h.Active() {
			continue
		}
		if e.completedOn(id, day) {
			count++
		}
	}
	return count
}

func (e *Engine) groupSatisfied(g *models.HabitGroup, date time.Time) bool {
	if e.groupAvailableMembers(g) == 0 {
		return false
	}
	return e.groupCompletedCount(g, date) >= g.RequireCount
}

// groupAvailableMembers counts members that still exist and are active.
func (e *Engine) groupAvailableMembers(g *models.HabitGroup) int {
	n := 0
	for _, id := range g.HabitIDs {
		if h, ok := e.habits[id]; ok && h.Active() {
			n++
		}
	}
	return n
}
