package engine

import (
	"context"
	"database/sql"

	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

// MilestoneDef is a built-in achievement awarded automatically by the
// engine. Earned checks whether the player qualifies right now; rows are
// inserted idempotently by code.
type MilestoneDef struct {
	Code        string
	Title       string
	Description string
	Icon        string
	Earned      func(level, completed int) bool
}

func builtinMilestones() []MilestoneDef {
	levelAt := func(n int) func(level, completed int) bool {
		return func(level, _ int) bool { return level >= n }
	}
	completedAt := func(n int) func(level, completed int) bool {
		return func(_, completed int) bool { return completed >= n }
	}
	return []MilestoneDef{
		{Code: "level_2", Title: "Getting Started", Description: "Reach level 2", Icon: "🌱", Earned: levelAt(2)},
		{Code: "level_5", Title: "On the Path", Description: "Reach level 5", Icon: "🌿", Earned: levelAt(5)},
		{Code: "level_10", Title: "Seasoned", Description: "Reach level 10", Icon: "⭐", Earned: levelAt(10)},
		{Code: "level_20", Title: "Veteran", Description: "Reach level 20", Icon: "🏆", Earned: levelAt(20)},
		{Code: "first_mission", Title: "First Mission", Description: "Complete 1 mission", Icon: "✓", Earned: completedAt(1)},
		{Code: "missions_10", Title: "Productive", Description: "Complete 10 missions", Icon: "📋", Earned: completedAt(10)},
		{Code: "missions_50", Title: "Powerhouse", Description: "Complete 50 missions", Icon: "🏅", Earned: completedAt(50)},
	}
}

// evaluateMilestones inserts any newly earned built-in achievements and
// returns them. Runs inside the completion transaction so the award and its
// badge land together.
func (s *Service) evaluateMilestones(ctx context.Context, tx *sql.Tx, userID string, level int) ([]storage.Achievement, error) {
	missions := storage.NewMissionRepo(tx)
	completed, err := missions.CountByStatus(ctx, userID, string(StatusCompleted))
	if err != nil {
		return nil, err
	}

	achievements := storage.NewAchievementRepo(tx)
	var unlocked []storage.Achievement
	for _, def := range builtinMilestones() {
		if !def.Earned(level, completed) {
			continue
		}
		code := def.Code
		desc := def.Description
		icon := def.Icon
		inserted, err := achievements.InsertMilestone(ctx, storage.AchievementInsert{
			UserID:      userID,
			Code:        &code,
			Title:       def.Title,
			Description: &desc,
			Icon:        &icon,
		})
		if err != nil {
			return nil, err
		}
		if inserted {
			unlocked = append(unlocked, storage.Achievement{
				UserID: userID,
				Code:   &code,
				Title:  def.Title,
			})
		}
	}
	return unlocked, nil
}

// CreateAchievement records a user-defined achievement.
func (s *Service) CreateAchievement(ctx context.Context, userID string, title string, description, icon *string) (*storage.Achievement, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	id, err := s.achievements.Insert(ctx, storage.AchievementInsert{
		UserID:      userID,
		Title:       t,
		Description: description,
		Icon:        icon,
	})
	if err != nil {
		return nil, err
	}
	return &storage.Achievement{ID: id, UserID: userID, Title: t, Description: description, Icon: icon}, nil
}
