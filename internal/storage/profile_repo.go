package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type ProfileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, username, avatar_url, xp, level, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`, userID)

	var (
		p      Profile
		avatar sql.NullString
	)
	if err := row.Scan(&p.UserID, &p.Username, &avatar, &p.XP, &p.Level, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	if avatar.Valid {
		v := avatar.String
		p.AvatarURL = &v
	}
	return &p, nil
}

func (r *ProfileRepo) Insert(ctx context.Context, userID, username string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, username, xp, level) VALUES (?, ?, 0, 1)
	`, userID, username)
	if err != nil {
		return fmt.Errorf("profile insert: %w", err)
	}
	return nil
}

// UpdateXPLevel persists the reward engine's XP/level write. Other columns
// are deliberately untouched.
func (r *ProfileRepo) UpdateXPLevel(ctx context.Context, userID string, xp, level int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles SET xp = ?, level = ?, updated_at = ? WHERE user_id = ?
	`, xp, level, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("profile update xp/level: %w", err)
	}
	return nil
}

// UpdateInfo updates username and/or avatar URL. Nil fields keep their
// current value (COALESCE semantics).
func (r *ProfileRepo) UpdateInfo(ctx context.Context, userID string, username, avatarURL *string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET username = COALESCE(?, username), avatar_url = COALESCE(?, avatar_url), updated_at = ?
		WHERE user_id = ?
	`, username, avatarURL, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("profile update info: %w", err)
	}
	return nil
}
