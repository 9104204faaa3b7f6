package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

type AchievementInsert struct {
	UserID      string
	Code        *string
	Title       string
	Description *string
	Icon        *string
}

func (r *AchievementRepo) Insert(ctx context.Context, in AchievementInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (user_id, code, title, description, icon)
		VALUES (?, ?, ?, ?, ?)
	`, in.UserID, in.Code, in.Title, in.Description, in.Icon)
	if err != nil {
		return 0, fmt.Errorf("achievement insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("achievement last insert id: %w", err)
	}
	return id, nil
}

// InsertMilestone inserts a coded achievement once per user; re-inserting
// the same code is a no-op and reports false.
func (r *AchievementRepo) InsertMilestone(ctx context.Context, in AchievementInsert) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (user_id, code, title, description, icon)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, code) WHERE code IS NOT NULL DO NOTHING
	`, in.UserID, in.Code, in.Title, in.Description, in.Icon)
	if err != nil {
		return false, fmt.Errorf("achievement insert milestone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("achievement milestone rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *AchievementRepo) ListByUser(ctx context.Context, userID string) ([]Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, code, title, description, icon, unlocked_at
		FROM achievements
		WHERE user_id = ?
		ORDER BY unlocked_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var (
			a           Achievement
			code        sql.NullString
			description sql.NullString
			icon        sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.UserID, &code, &a.Title, &description, &icon, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		if code.Valid {
			v := code.String
			a.Code = &v
		}
		if description.Valid {
			v := description.String
			a.Description = &v
		}
		if icon.Valid {
			v := icon.String
			a.Icon = &v
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}

func (r *AchievementRepo) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM achievements WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("achievement delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("achievement delete rows affected: %w", err)
	}
	return n > 0, nil
}
