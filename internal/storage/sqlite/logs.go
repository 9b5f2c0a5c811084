package sqlite

import (
	"fmt"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

const logColumns = `id, habit_id, day, completed, note, photo_ref, created_at, updated_at`

// UpsertLog keys on (habit_id, day) so a day can only ever hold one log
// row per habit, whichever id the caller carries.
func (s *Store) UpsertLog(log models.DailyLog) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_logs (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET
			completed = excluded.completed,
			note = excluded.note,
			photo_ref = excluded.photo_ref,
			updated_at = excluded.updated_at`,
		log.ID, log.HabitID, log.Day, boolToInt(log.Completed),
		log.Note, log.PhotoRef,
		log.CreatedAt.Format(time.RFC3339), log.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetLog(habitID, day string) (models.DailyLog, error) {
	row := s.db.QueryRow(`
		SELECT `+logColumns+` FROM daily_logs
		WHERE habit_id = ? AND day = ?`, habitID, day)
	return scanLog(row)
}

func (s *Store) GetLogsForHabit(habitID string) ([]models.DailyLog, error) {
	rows, err := s.db.Query(`
		SELECT `+logColumns+` FROM daily_logs
		WHERE habit_id = ? ORDER BY day`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) GetAllLogs() ([]models.DailyLog, error) {
	rows, err := s.db.Query(`
		SELECT ` + logColumns + ` FROM daily_logs ORDER BY day, habit_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func scanLog(row scanner) (models.DailyLog, error) {
	var l models.DailyLog
	var completed int
	var createdAt, updatedAt string

	err := row.Scan(&l.ID, &l.HabitID, &l.Day, &completed, &l.Note,
		&l.PhotoRef, &createdAt, &updatedAt)
	if err != nil {
		return models.DailyLog{}, err
	}

	l.Completed = completed != 0
	l.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return l, nil
}
