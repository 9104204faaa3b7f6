package api

import (
	"time"

	"github.com/wichardvalente37/war-path-progress/internal/engine"
	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

type userJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type profileJSON struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url"`
	XP        int       `json:"xp"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type missionJSON struct {
	ID                int64       `json:"id"`
	UserID            string      `json:"user_id"`
	Title             string      `json:"title"`
	Description       *string     `json:"description"`
	Difficulty        string      `json:"difficulty"`
	XP                int         `json:"xp"`
	Status            string      `json:"status"`
	DueDate           *time.Time  `json:"due_date"`
	GoalID            *int64      `json:"goal_id"`
	IsRecurring       bool        `json:"is_recurring"`
	RecurrencePattern *string     `json:"recurrence_pattern"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	CompletedAt       *time.Time  `json:"completed_at"`
	Reward            *rewardJSON `json:"reward,omitempty"`
}

type rewardJSON struct {
	XPAwarded   int       `json:"xp_awarded"`
	XPTotal     int       `json:"xp_total"`
	LevelBefore int       `json:"level_before"`
	LevelAfter  int       `json:"level_after"`
	LevelUp     bool      `json:"level_up"`
	Goal        *goalJSON `json:"goal,omitempty"`
	Unlocked    []string  `json:"unlocked,omitempty"`
}

type goalJSON struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Target      int       `json:"target"`
	Current     int       `json:"current"`
	Category    *string   `json:"category"`
	Difficulty  string    `json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type categoryJSON struct {
	ID     int64  `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type achievementJSON struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Code        *string   `json:"code,omitempty"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

func toProfileJSON(p *storage.Profile) profileJSON {
	return profileJSON{
		UserID:    p.UserID,
		Username:  p.Username,
		AvatarURL: p.AvatarURL,
		XP:        p.XP,
		Level:     p.Level,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toMissionJSON(m *storage.Mission) missionJSON {
	return missionJSON{
		ID:                m.ID,
		UserID:            m.UserID,
		Title:             m.Title,
		Description:       m.Description,
		Difficulty:        m.Difficulty,
		XP:                m.XP,
		Status:            m.Status,
		DueDate:           m.DueDate,
		GoalID:            m.GoalID,
		IsRecurring:       m.IsRecurring,
		RecurrencePattern: m.RecurrencePattern,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		CompletedAt:       m.CompletedAt,
	}
}

func toRewardJSON(res *engine.CompleteResult) *rewardJSON {
	if res == nil {
		return nil
	}
	out := &rewardJSON{
		XPAwarded:   res.XPAwarded,
		XPTotal:     res.XPTotal,
		LevelBefore: res.LevelBefore,
		LevelAfter:  res.LevelAfter,
		LevelUp:     res.LevelUp,
	}
	if res.Goal != nil {
		out.Goal = &goalJSON{ID: res.Goal.ID, Current: res.Goal.Current, Target: res.Goal.Target}
	}
	for _, a := range res.Unlocked {
		out.Unlocked = append(out.Unlocked, a.Title)
	}
	return out
}

func toGoalJSON(g *storage.Goal) goalJSON {
	return goalJSON{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Description: g.Description,
		Target:      g.Target,
		Current:     g.Current,
		Category:    g.Category,
		Difficulty:  g.Difficulty,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toAchievementJSON(a *storage.Achievement) achievementJSON {
	return achievementJSON{
		ID:          a.ID,
		UserID:      a.UserID,
		Code:        a.Code,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		UnlockedAt:  a.UnlockedAt,
	}
}
