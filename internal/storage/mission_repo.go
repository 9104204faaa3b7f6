package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type MissionRepo struct {
	db DBTX
}

func NewMissionRepo(db DBTX) *MissionRepo {
	return &MissionRepo{db: db}
}

type MissionInsert struct {
	UserID            string
	Title             string
	Description       *string
	Difficulty        string
	XP                int
	Status            string
	DueDate           *time.Time
	GoalID            *int64
	IsRecurring       bool
	RecurrencePattern *string
}

// MissionUpdate is a partial update: nil fields keep their current value.
// GoalID is applied unconditionally so an update can clear a goal link.
type MissionUpdate struct {
	Title       *string
	Description *string
	Difficulty  *string
	XP          *int
	Status      *string
	DueDate     *time.Time
	GoalID      *int64
}

const missionColumns = `id, user_id, title, description, difficulty, xp, status, due_date, goal_id,
	is_recurring, recurrence_pattern, created_at, updated_at, completed_at`

func (r *MissionRepo) Insert(ctx context.Context, in MissionInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO missions (
			user_id, title, description, difficulty, xp, status, due_date, goal_id,
			is_recurring, recurrence_pattern
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.UserID, in.Title, in.Description, in.Difficulty, in.XP, in.Status, in.DueDate, in.GoalID,
		boolToInt(in.IsRecurring), in.RecurrencePattern)
	if err != nil {
		return 0, fmt.Errorf("mission insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("mission last insert id: %w", err)
	}
	return id, nil
}

func (r *MissionRepo) Get(ctx context.Context, userID string, id int64) (*Mission, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+missionColumns+`
		FROM missions
		WHERE id = ? AND user_id = ?
	`, id, userID)
	return scanMissionRow(row)
}

func (r *MissionRepo) ListByUser(ctx context.Context, userID string) ([]Mission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+missionColumns+`
		FROM missions
		WHERE user_id = ?
		ORDER BY due_date ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("mission list: %w", err)
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		m, err := scanMissionRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mission list rows: %w", err)
	}
	return out, nil
}

func (r *MissionRepo) Update(ctx context.Context, userID string, id int64, in MissionUpdate) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE missions
		SET title = COALESCE(?, title),
			description = COALESCE(?, description),
			difficulty = COALESCE(?, difficulty),
			xp = COALESCE(?, xp),
			status = COALESCE(?, status),
			due_date = COALESCE(?, due_date),
			goal_id = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?
	`, in.Title, in.Description, in.Difficulty, in.XP, in.Status, in.DueDate, in.GoalID,
		time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("mission update: %w", err)
	}
	return nil
}

func (r *MissionRepo) MarkCompleted(ctx context.Context, userID string, id int64, completedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE missions
		SET status = 'completed', completed_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, completedAt, completedAt, id, userID)
	if err != nil {
		return fmt.Errorf("mission mark completed: %w", err)
	}
	return nil
}

func (r *MissionRepo) UpdateStatus(ctx context.Context, userID string, id int64, status string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE missions SET status = ?, updated_at = ? WHERE id = ? AND user_id = ?
	`, status, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("mission update status: %w", err)
	}
	return nil
}

// Delete reports whether a row was removed so callers can distinguish
// "not found" from success.
func (r *MissionRepo) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("mission delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mission delete rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *MissionRepo) CountByStatus(ctx context.Context, userID, status string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM missions WHERE user_id = ? AND status = ?
	`, userID, status)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("mission count: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMissionRow(row scanner) (*Mission, error) {
	var (
		m           Mission
		description sql.NullString
		dueDate     sql.NullTime
		goalID      sql.NullInt64
		isRecurring int
		recurrence  sql.NullString
		completedAt sql.NullTime
	)

	if err := row.Scan(
		&m.ID, &m.UserID, &m.Title, &description, &m.Difficulty, &m.XP, &m.Status, &dueDate, &goalID,
		&isRecurring, &recurrence, &m.CreatedAt, &m.UpdatedAt, &completedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("mission scan: %w", err)
	}

	if description.Valid {
		v := description.String
		m.Description = &v
	}
	if dueDate.Valid {
		v := dueDate.Time
		m.DueDate = &v
	}
	if goalID.Valid {
		v := goalID.Int64
		m.GoalID = &v
	}
	m.IsRecurring = isRecurring != 0
	if recurrence.Valid {
		v := recurrence.String
		m.RecurrencePattern = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		m.CompletedAt = &v
	}
	return &m, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
