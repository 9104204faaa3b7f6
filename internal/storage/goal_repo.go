package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type GoalRepo struct {
	db DBTX
}

func NewGoalRepo(db DBTX) *GoalRepo {
	return &GoalRepo{db: db}
}

type GoalInsert struct {
	UserID      string
	Title       string
	Description *string
	Target      int
	Current     int
	Category    *string
	Difficulty  string
}

// GoalUpdate is a partial update: nil fields keep their current value.
type GoalUpdate struct {
	Title       *string
	Description *string
	Target      *int
	Current     *int
	Category    *string
	Difficulty  *string
}

const goalColumns = `id, user_id, title, description, target, current, category, difficulty, created_at, updated_at`

func (r *GoalRepo) Insert(ctx context.Context, in GoalInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (user_id, title, description, target, current, category, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.UserID, in.Title, in.Description, in.Target, in.Current, in.Category, in.Difficulty)
	if err != nil {
		return 0, fmt.Errorf("goal insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("goal last insert id: %w", err)
	}
	return id, nil
}

func (r *GoalRepo) Get(ctx context.Context, userID string, id int64) (*Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?
	`, id, userID)
	return scanGoalRow(row)
}

func (r *GoalRepo) ListByUser(ctx context.Context, userID string) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("goal list: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		g, err := scanGoalRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal list rows: %w", err)
	}
	return out, nil
}

func (r *GoalRepo) Update(ctx context.Context, userID string, id int64, in GoalUpdate) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET title = COALESCE(?, title),
			description = COALESCE(?, description),
			target = COALESCE(?, target),
			current = COALESCE(?, current),
			category = COALESCE(?, category),
			difficulty = COALESCE(?, difficulty),
			updated_at = ?
		WHERE id = ? AND user_id = ?
	`, in.Title, in.Description, in.Target, in.Current, in.Category, in.Difficulty,
		time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("goal update: %w", err)
	}
	return nil
}

// SetCurrent persists the reward engine's progress increment.
func (r *GoalRepo) SetCurrent(ctx context.Context, id int64, current int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE goals SET current = ?, updated_at = ? WHERE id = ?`, current, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("goal set current: %w", err)
	}
	return nil
}

func (r *GoalRepo) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("goal delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("goal delete rows affected: %w", err)
	}
	return n > 0, nil
}

func scanGoalRow(row scanner) (*Goal, error) {
	var (
		g           Goal
		description sql.NullString
		category    sql.NullString
	)
	if err := row.Scan(&g.ID, &g.UserID, &g.Title, &description, &g.Target, &g.Current, &category, &g.Difficulty, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("goal scan: %w", err)
	}
	if description.Valid {
		v := description.String
		g.Description = &v
	}
	if category.Valid {
		v := category.String
		g.Category = &v
	}
	return &g, nil
}
