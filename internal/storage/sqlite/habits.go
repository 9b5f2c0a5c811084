package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

const habitColumns = `id, name, tier, type, recurrence_type, recurrence_target,
	group_id, success_criteria, triggers_slip, reminder_time,
	current_streak, best_streak, created_at, archived_at`

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (s *Store) GetAllHabits(includeArchived bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	var archivedAt sql.NullString
	if habit.ArchivedAt != nil {
		archivedAt = sql.NullString{String: habit.ArchivedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			tier = excluded.tier,
			type = excluded.type,
			recurrence_type = excluded.recurrence_type,
			recurrence_target = excluded.recurrence_target,
			group_id = excluded.group_id,
			success_criteria = excluded.success_criteria,
			triggers_slip = excluded.triggers_slip,
			reminder_time = excluded.reminder_time,
			current_streak = excluded.current_streak,
			best_streak = excluded.best_streak,
			created_at = excluded.created_at,
			archived_at = excluded.archived_at`,
		habit.ID, habit.Name, string(habit.Tier), string(habit.Type),
		string(habit.Recurrence.Type), habit.Recurrence.Target,
		habit.GroupID, habit.SuccessCriteria, boolToInt(habit.TriggersSlip),
		habit.ReminderTime, habit.CurrentStreak, habit.BestStreak,
		habit.CreatedAt.Format(time.RFC3339), archivedAt)
	return err
}

// DeleteHabit removes the habit, its entire log history, and its group
// membership rows in one transaction.
func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM daily_logs WHERE habit_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM group_members WHERE habit_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}

	return tx.Commit()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var tier, habitType, recurrenceType, createdAt string
	var triggersSlip int
	var archivedAt sql.NullString

	err := row.Scan(&h.ID, &h.Name, &tier, &habitType, &recurrenceType,
		&h.Recurrence.Target, &h.GroupID, &h.SuccessCriteria, &triggersSlip,
		&h.ReminderTime, &h.CurrentStreak, &h.BestStreak, &createdAt, &archivedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Tier = models.Tier(tier)
	h.Type = models.HabitType(habitType)
	h.Recurrence.Type = models.RecurrenceType(recurrenceType)
	h.TriggersSlip = triggersSlip != 0

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if archivedAt.Valid {
		t, err := time.Parse(time.RFC3339, archivedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse archived_at: %w", err)
		}
		h.ArchivedAt = &t
	}

	return h, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
