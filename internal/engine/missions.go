package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

type CreateMissionInput struct {
	Title             string
	Description       *string
	Difficulty        Difficulty
	DueDate           *time.Time
	GoalID            *int64
	IsRecurring       bool
	RecurrencePattern *string
}

// UpdateMissionInput is a partial update. Nil fields keep their current
// value, except GoalID which is applied as-is so an update can unlink a
// goal. A difficulty change re-derives the mission's fixed XP from the tier.
type UpdateMissionInput struct {
	Title       *string
	Description *string
	Difficulty  *Difficulty
	Status      *Status
	DueDate     *time.Time
	GoalID      *int64
}

func (s *Service) CreateMission(ctx context.Context, userID string, in CreateMissionInput) (*storage.Mission, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	diff := in.Difficulty
	if diff == "" {
		diff = DefaultDifficulty
	}
	if !diff.IsValid() {
		return nil, ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown tier %q", diff)}
	}
	xp, err := XPForDifficulty(diff)
	if err != nil {
		return nil, err
	}

	if in.GoalID != nil {
		g, err := s.goals.Get(ctx, userID, *in.GoalID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, fmt.Errorf("goal %d: %w", *in.GoalID, ErrNotFound)
		}
	}

	id, err := s.missions.Insert(ctx, storage.MissionInsert{
		UserID:            userID,
		Title:             title,
		Description:       in.Description,
		Difficulty:        string(diff),
		XP:                xp,
		Status:            string(StatusPending),
		DueDate:           in.DueDate,
		GoalID:            in.GoalID,
		IsRecurring:       in.IsRecurring,
		RecurrencePattern: in.RecurrencePattern,
	})
	if err != nil {
		return nil, err
	}
	return s.missions.Get(ctx, userID, id)
}

// UpdateMission applies a partial update. When the update is a genuine
// transition into completed the reward runs in the same transaction; setting
// status to completed on an already-completed mission updates the other
// fields but never awards again.
func (s *Service) UpdateMission(ctx context.Context, userID string, id int64, in UpdateMissionInput) (*storage.Mission, *CompleteResult, error) {
	var (
		updated *storage.Mission
		reward  *CompleteResult
	)
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		missions := storage.NewMissionRepo(tx)
		m, err := missions.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("mission %d: %w", id, ErrNotFound)
		}

		from := Status(m.Status)
		rewarding := false
		var statusStr *string
		if in.Status != nil {
			to := *in.Status
			if !to.IsValid() {
				return ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", to)}
			}
			if !CanTransition(from, to) {
				return TransitionError{From: from, To: to}
			}
			rewarding = to == StatusCompleted && from != StatusCompleted
			v := string(to)
			statusStr = &v
		}

		var diffStr *string
		var xp *int
		if in.Difficulty != nil {
			d := *in.Difficulty
			if !d.IsValid() {
				return ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown tier %q", d)}
			}
			v, err := XPForDifficulty(d)
			if err != nil {
				return err
			}
			ds := string(d)
			diffStr = &ds
			xp = &v
		}

		var title *string
		if in.Title != nil {
			t, err := normalizeTitle(*in.Title)
			if err != nil {
				return err
			}
			title = &t
		}

		if in.GoalID != nil {
			g, err := storage.NewGoalRepo(tx).Get(ctx, userID, *in.GoalID)
			if err != nil {
				return err
			}
			if g == nil {
				return fmt.Errorf("goal %d: %w", *in.GoalID, ErrNotFound)
			}
		}

		if err := missions.Update(ctx, userID, id, storage.MissionUpdate{
			Title:       title,
			Description: in.Description,
			Difficulty:  diffStr,
			XP:          xp,
			Status:      statusStr,
			DueDate:     in.DueDate,
			GoalID:      in.GoalID,
		}); err != nil {
			return err
		}

		updated, err = missions.Get(ctx, userID, id)
		if err != nil {
			return err
		}

		if rewarding {
			now := time.Now().UTC()
			if err := missions.MarkCompleted(ctx, userID, id, now); err != nil {
				return err
			}
			reward, err = s.applyReward(ctx, tx, userID, updated)
			if err != nil {
				return err
			}
			updated.Status = string(StatusCompleted)
			updated.CompletedAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, reward, nil
}

func (s *Service) DeleteMission(ctx context.Context, userID string, id int64) error {
	deleted, err := s.missions.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("mission %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Service) ListMissions(ctx context.Context, userID string) ([]storage.Mission, error) {
	return s.missions.ListByUser(ctx, userID)
}
