package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

type Store struct {
	Version  int                                   `json:"version"`
	Settings models.Settings                       `json:"settings"`
	Habits   map[string]models.Habit               `json:"habits"`
	Groups   map[string]models.HabitGroup          `json:"groups"`
	Logs     map[string]map[string]models.DailyLog `json:"logs"` // habit id -> day -> log
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	settings := models.Settings{RemindersOn: true}
	models.ApplyDefaultSettings(&settings)

	s.store = &Store{
		Version:  1,
		Settings: settings,
		Habits:   make(map[string]models.Habit),
		Groups:   make(map[string]models.HabitGroup),
		Logs:     make(map[string]map[string]models.DailyLog),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitat init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Groups == nil {
		s.store.Groups = make(map[string]models.HabitGroup)
	}
	if s.store.Logs == nil {
		s.store.Logs = make(map[string]map[string]models.DailyLog)
	}
	models.ApplyDefaultSettings(&s.store.Settings)

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}

	return habit, nil
}

func (s *JSONStore) GetAllHabits(includeArchived bool) ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		if !includeArchived && habit.ArchivedAt != nil {
			continue
		}
		habits = append(habits, habit)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[habit.ID]; !ok {
		return fmt.Errorf("habit not found: %s", habit.ID)
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[id]; !ok {
		return fmt.Errorf("habit not found: %s", id)
	}

	// Habit and its entire log history go together.
	delete(s.store.Habits, id)
	delete(s.store.Logs, id)
	return s.save()
}

func (s *JSONStore) AddGroup(group models.HabitGroup) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Groups[group.ID] = group
	return s.save()
}

func (s *JSONStore) GetGroup(id string) (models.HabitGroup, error) {
	if s.store == nil {
		return models.HabitGroup{}, fmt.Errorf("storage not loaded")
	}

	group, ok := s.store.Groups[id]
	if !ok {
		return models.HabitGroup{}, fmt.Errorf("group not found: %s", id)
	}

	return group, nil
}

func (s *JSONStore) GetAllGroups() ([]models.HabitGroup, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	groups := make([]models.HabitGroup, 0, len(s.store.Groups))
	for _, group := range s.store.Groups {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})

	return groups, nil
}

func (s *JSONStore) UpdateGroup(group models.HabitGroup) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Groups[group.ID]; !ok {
		return fmt.Errorf("group not found: %s", group.ID)
	}

	s.store.Groups[group.ID] = group
	return s.save()
}

func (s *JSONStore) DeleteGroup(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Groups[id]; !ok {
		return fmt.Errorf("group not found: %s", id)
	}

	delete(s.store.Groups, id)
	return s.save()
}

func (s *JSONStore) UpsertLog(log models.DailyLog) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if s.store.Logs[log.HabitID] == nil {
		s.store.Logs[log.HabitID] = make(map[string]models.DailyLog)
	}
	s.store.Logs[log.HabitID][log.Day] = log
	return s.save()
}

func (s *JSONStore) GetLog(habitID, day string) (models.DailyLog, error) {
	if s.store == nil {
		return models.DailyLog{}, fmt.Errorf("storage not loaded")
	}

	log, ok := s.store.Logs[habitID][day]
	if !ok {
		return models.DailyLog{}, fmt.Errorf("log not found: %s/%s", habitID, day)
	}

	return log, nil
}

func (s *JSONStore) GetLogsForHabit(habitID string) ([]models.DailyLog, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	logs := make([]models.DailyLog, 0, len(s.store.Logs[habitID]))
	for _, log := range s.store.Logs[habitID] {
		logs = append(logs, log)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Day < logs[j].Day })

	return logs, nil
}

func (s *JSONStore) GetAllLogs() ([]models.DailyLog, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var logs []models.DailyLog
	for _, byDay := range s.store.Logs {
		for _, log := range byDay {
			logs = append(logs, log)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].Day != logs[j].Day {
			return logs[i].Day < logs[j].Day
		}
		return logs[i].HabitID < logs[j].HabitID
	})

	return logs, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
