package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

// GoalProgress reports a goal's state after a completion touched it.
type GoalProgress struct {
	ID      int64
	Current int
	Target  int
}

// CompleteResult is returned after a mission completion was rewarded.
type CompleteResult struct {
	MissionID   int64
	XPAwarded   int
	XPTotal     int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Goal        *GoalProgress
	Unlocked    []storage.Achievement
}

// CompleteMission marks a mission completed and applies the reward: profile
// XP increases by the mission's fixed XP, level follows the flat formula and
// a linked goal advances by one. The status change and both reward writes
// commit or roll back together. Completing an already-completed mission is a
// TransitionError, never a double award.
func (s *Service) CompleteMission(ctx context.Context, userID string, id int64) (*CompleteResult, error) {
	var res *CompleteResult
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
		if from == StatusCompleted || !CanTransition(from, StatusCompleted) {
			return TransitionError{From: from, To: StatusCompleted}
		}

		now := time.Now().UTC()
		if err := missions.MarkCompleted(ctx, userID, id, now); err != nil {
			return err
		}

		res, err = s.applyReward(ctx, tx, userID, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FailMission marks a pending mission failed. No XP or goal mutation occurs.
func (s *Service) FailMission(ctx context.Context, userID string, id int64) error {
	m, err := s.missions.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("mission %d: %w", id, ErrNotFound)
	}
	from := Status(m.Status)
	if from == StatusFailed {
		return nil
	}
	if !CanTransition(from, StatusFailed) {
		return TransitionError{From: from, To: StatusFailed}
	}
	return s.missions.UpdateStatus(ctx, userID, id, string(StatusFailed))
}

// applyReward performs the profile XP/level write, the optional +1 goal
// increment, and milestone evaluation. Must run inside the same transaction
// as the mission's status change. The profile lookup comes first: if it
// fails, nothing is written.
func (s *Service) applyReward(ctx context.Context, tx *sql.Tx, userID string, m *storage.Mission) (*CompleteResult, error) {
	profiles := storage.NewProfileRepo(tx)
	p, err := profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
	}

	levelBefore := p.Level
	newXP := p.XP + m.XP
	newLevel := LevelForXP(newXP)
	if err := profiles.UpdateXPLevel(ctx, userID, newXP, newLevel); err != nil {
		return nil, err
	}

	res := &CompleteResult{
		MissionID:   m.ID,
		XPAwarded:   m.XP,
		XPTotal:     newXP,
		LevelBefore: levelBefore,
		LevelAfter:  newLevel,
		LevelUp:     newLevel > levelBefore,
	}

	if m.GoalID != nil {
		goals := storage.NewGoalRepo(tx)
		g, err := goals.Get(ctx, userID, *m.GoalID)
		if err != nil {
			return nil, err
		}
		// A vanished goal skips the increment; the XP gain stands.
		if g != nil {
			if g.Current < g.Target {
				g.Current++
				if err := goals.SetCurrent(ctx, g.ID, g.Current); err != nil {
					return nil, err
				}
			}
			res.Goal = &GoalProgress{ID: g.ID, Current: g.Current, Target: g.Target}
		}
	}

	unlocked, err := s.evaluateMilestones(ctx, tx, userID, newLevel)
	if err != nil {
		return nil, err
	}
	res.Unlocked = unlocked
	return res, nil
}
