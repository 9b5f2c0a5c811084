package sqlite

import (
	"fmt"
	"time"

	"github.com/SashaSaw/Habitat-sub000/internal/models"
)

func (s *Store) AddGroup(group models.HabitGroup) error {
	return s.UpdateGroup(group)
}

func (s *Store) GetGroup(id string) (models.HabitGroup, error) {
	row := s.db.QueryRow(`
		SELECT id, name, tier, require_count, created_at
		FROM habit_groups WHERE id = ?`, id)

	g, err := scanGroup(row)
	if err != nil {
		return models.HabitGroup{}, err
	}

	g.HabitIDs, err = s.groupMembers(id)
	if err != nil {
		return models.HabitGroup{}, err
	}
	return g, nil
}

func (s *Store) GetAllGroups() ([]models.HabitGroup, error) {
	rows, err := s.db.Query(`
		SELECT id, name, tier, require_count, created_at
		FROM habit_groups ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.HabitGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		groups[i].HabitIDs, err = s.groupMembers(groups[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// UpdateGroup rewrites the group row and its member rows together so the
// ordered member set never goes half-written.
func (s *Store) UpdateGroup(group models.HabitGroup) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO habit_groups (id, name, tier, require_count, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			tier = excluded.tier,
			require_count = excluded.require_count,
			created_at = excluded.created_at`,
		group.ID, group.Name, string(group.Tier), group.RequireCount,
		group.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM group_members WHERE group_id = ?`, group.ID); err != nil {
		return err
	}
	for i, habitID := range group.HabitIDs {
		if _, err := tx.Exec(`
			INSERT INTO group_members (group_id, habit_id, position)
			VALUES (?, ?, ?)`, group.ID, habitID, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteGroup(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM group_members WHERE group_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM habit_groups WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("group not found: %s", id)
	}

	return tx.Commit()
}

func (s *Store) groupMembers(groupID string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT habit_id FROM group_members
		WHERE group_id = ? ORDER BY position`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanGroup(row scanner) (models.HabitGroup, error) {
	var g models.HabitGroup
	var tier, createdAt string

	err := row.Scan(&g.ID, &g.Name, &tier, &g.RequireCount, &createdAt)
	if err != nil {
		return models.HabitGroup{}, err
	}

	g.Tier = models.Tier(tier)
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.HabitGroup{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return g, nil
}
