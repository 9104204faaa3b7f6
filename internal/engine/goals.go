package engine

import (
	"context"
	"fmt"

	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

type CreateGoalInput struct {
	Title       string
	Description *string
	Target      int
	Current     int
	Category    *string
	Difficulty  Difficulty
}

type UpdateGoalInput struct {
	Title       *string
	Description *string
	Target      *int
	Current     *int
	Category    *string
	Difficulty  *Difficulty
}

// DefaultGoalTarget applies when a goal is created without a target.
const DefaultGoalTarget = 100

func (s *Service) CreateGoal(ctx context.Context, userID string, in CreateGoalInput) (*storage.Goal, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	target := in.Target
	if target <= 0 {
		target = DefaultGoalTarget
	}
	current := clamp(in.Current, 0, target)
	diff := in.Difficulty
	if diff == "" {
		diff = DefaultDifficulty
	}
	if !diff.IsValid() {
		return nil, ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown tier %q", diff)}
	}

	id, err := s.goals.Insert(ctx, storage.GoalInsert{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Target:      target,
		Current:     current,
		Category:    in.Category,
		Difficulty:  string(diff),
	})
	if err != nil {
		return nil, err
	}
	return s.goals.Get(ctx, userID, id)
}

// UpdateGoal applies a partial update. Manual progress edits are clamped to
// [0, target] so user adjustments keep the same invariant the engine's
// increments do.
func (s *Service) UpdateGoal(ctx context.Context, userID string, id int64, in UpdateGoalInput) (*storage.Goal, error) {
	g, err := s.goals.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}

	var title *string
	if in.Title != nil {
		t, err := normalizeTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		title = &t
	}

	target := g.Target
	if in.Target != nil {
		if *in.Target <= 0 {
			return nil, ValidationError{Field: "target", Reason: "must be positive"}
		}
		target = *in.Target
	}
	var current *int
	if in.Current != nil {
		v := clamp(*in.Current, 0, target)
		current = &v
	}

	var diffStr *string
	if in.Difficulty != nil {
		if !in.Difficulty.IsValid() {
			return nil, ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown tier %q", *in.Difficulty)}
		}
		v := string(*in.Difficulty)
		diffStr = &v
	}

	if err := s.goals.Update(ctx, userID, id, storage.GoalUpdate{
		Title:       title,
		Description: in.Description,
		Target:      in.Target,
		Current:     current,
		Category:    in.Category,
		Difficulty:  diffStr,
	}); err != nil {
		return nil, err
	}
	return s.goals.Get(ctx, userID, id)
}

func (s *Service) DeleteGoal(ctx context.Context, userID string, id int64) error {
	deleted, err := s.goals.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Service) ListGoals(ctx context.Context, userID string) ([]storage.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
