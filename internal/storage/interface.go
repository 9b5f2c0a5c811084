package storage

import (
	"path/filepath"
	"strings"

	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

// Provider is the persistence boundary: it can load the full habit data
// set at startup and persist each mutation. The engine itself never talks
// to a Provider; callers load a snapshot into the engine and write back
// what changed.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits(includeArchived bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit and all of its day logs as one unit.
	DeleteHabit(id string) error

	// Groups
	AddGroup(models.HabitGroup) error
	GetGroup(id string) (models.HabitGroup, error)
	GetAllGroups() ([]models.HabitGroup, error)
	UpdateGroup(models.HabitGroup) error
	DeleteGroup(id string) error

	// Day logs
	UpsertLog(models.DailyLog) error
	GetLog(habitID, day string) (models.DailyLog, error)
	GetLogsForHabit(habitID string) ([]models.DailyLog, error)
	GetAllLogs() ([]models.DailyLog, error)

	// Utils
	GetConfigPath() string
}

// ForPath selects a Provider implementation from the config path: a .json
// path gets the JSON file store, everything else the SQLite store.
func ForPath(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}
