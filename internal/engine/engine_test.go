package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/wichardvalente37/war-path-progress/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func newTestUser(t *testing.T, svc *Service) string {
	t.Helper()
	ctx := context.Background()
	u, err := svc.CreateAccount(ctx, "hero@example.com", "$2a$10$fakehash")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return u.ID
}

func setProfileXP(t *testing.T, svc *Service, userID string, xp int) {
	t.Helper()
	ctx := context.Background()
	if err := svc.ProfileRepo().UpdateXPLevel(ctx, userID, xp, LevelForXP(xp)); err != nil {
		t.Fatalf("set profile xp: %v", err)
	}
}

func addMission(t *testing.T, svc *Service, userID string, diff Difficulty, goalID *int64) int64 {
	t.Helper()
	ctx := context.Background()
	m, err := svc.CreateMission(ctx, userID, CreateMissionInput{
		Title:      fmt.Sprintf("mission-%s", diff),
		Difficulty: diff,
		GoalID:     goalID,
	})
	if err != nil {
		t.Fatalf("create mission: %v", err)
	}
	return m.ID
}

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{250, 3},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.level {
			t.Fatalf("LevelForXP(%d)=%d, want %d", c.xp, got, c.level)
		}
	}
	if got := XPForLevel(3); got != 200 {
		t.Fatalf("XPForLevel(3)=%d, want 200", got)
	}
	if got := XPToNextLevel(250); got != 50 {
		t.Fatalf("XPToNextLevel(250)=%d, want 50", got)
	}
}

func TestXPForDifficultyTiers(t *testing.T) {
	want := map[Difficulty]int{
		DifficultyEasy:    10,
		DifficultyNormal:  30,
		DifficultyHard:    50,
		DifficultyExtreme: 100,
	}
	for d, xp := range want {
		got, err := XPForDifficulty(d)
		if err != nil {
			t.Fatalf("XPForDifficulty(%s): %v", d, err)
		}
		if got != xp {
			t.Fatalf("XPForDifficulty(%s)=%d, want %d", d, got, xp)
		}
	}
	if _, err := XPForDifficulty("nightmare"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
}

func TestCompleteMissionAwardsXPAndLevels(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	setProfileXP(t, svc, userID, 70)

	id := addMission(t, svc, userID, DifficultyHard, nil)
	res, err := svc.CompleteMission(ctx, userID, id)
	if err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if res.XPAwarded != 50 {
		t.Fatalf("XPAwarded=%d, want 50", res.XPAwarded)
	}
	if res.XPTotal != 120 {
		t.Fatalf("XPTotal=%d, want 120", res.XPTotal)
	}
	if res.LevelBefore != 1 || res.LevelAfter != 2 || !res.LevelUp {
		t.Fatalf("level transition=%d→%d (up=%v), want 1→2 (up=true)", res.LevelBefore, res.LevelAfter, res.LevelUp)
	}

	m, err := svc.MissionRepo().Get(ctx, userID, id)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if m.Status != "completed" {
		t.Fatalf("mission status=%q, want completed", m.Status)
	}
	if m.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}

	p, err := svc.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.XP != 120 || p.Level != 2 {
		t.Fatalf("profile xp=%d level=%d, want 120/2", p.XP, p.Level)
	}
}

func TestMissionXPFixedAtCreation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	id := addMission(t, svc, userID, DifficultyEasy, nil)
	m, err := svc.MissionRepo().Get(ctx, userID, id)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if m.XP != 10 {
		t.Fatalf("easy mission xp=%d, want 10", m.XP)
	}

	// Changing the tier re-derives the stored XP.
	hard := DifficultyHard
	updated, _, err := svc.UpdateMission(ctx, userID, id, UpdateMissionInput{Difficulty: &hard})
	if err != nil {
		t.Fatalf("UpdateMission: %v", err)
	}
	if updated.XP != 50 {
		t.Fatalf("updated mission xp=%d, want 50", updated.XP)
	}
}

func TestGoalIncrementAndSkipAtTarget(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	g, err := svc.CreateGoal(ctx, userID, CreateGoalInput{Title: "Run 10 km", Target: 10, Current: 9})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	first := addMission(t, svc, userID, DifficultyEasy, &g.ID)
	res, err := svc.CompleteMission(ctx, userID, first)
	if err != nil {
		t.Fatalf("complete first: %v", err)
	}
	if res.Goal == nil || res.Goal.Current != 10 || res.Goal.Target != 10 {
		t.Fatalf("goal progress=%+v, want 10/10", res.Goal)
	}

	// Target already reached: further completions award XP but leave the
	// counter alone.
	second := addMission(t, svc, userID, DifficultyEasy, &g.ID)
	res2, err := svc.CompleteMission(ctx, userID, second)
	if err != nil {
		t.Fatalf("complete second: %v", err)
	}
	if res2.Goal == nil || res2.Goal.Current != 10 {
		t.Fatalf("goal progress after overflow=%+v, want current=10", res2.Goal)
	}
	if res2.XPTotal != 20 {
		t.Fatalf("XPTotal=%d, want 20", res2.XPTotal)
	}

	got, err := svc.GoalRepo().Get(ctx, userID, g.ID)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if got.Current != 10 {
		t.Fatalf("stored goal current=%d, want 10", got.Current)
	}
}

func TestVanishedGoalSkipsIncrement(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	g, err := svc.CreateGoal(ctx, userID, CreateGoalInput{Title: "Doomed goal", Target: 5})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	id := addMission(t, svc, userID, DifficultyNormal, &g.ID)

	if err := svc.DeleteGoal(ctx, userID, g.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}

	res, err := svc.CompleteMission(ctx, userID, id)
	if err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if res.Goal != nil {
		t.Fatalf("expected no goal progress, got %+v", res.Goal)
	}
	if res.XPTotal != 30 {
		t.Fatalf("XPTotal=%d, want 30", res.XPTotal)
	}
}

func TestDoubleCompletionAwardsOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	id := addMission(t, svc, userID, DifficultyNormal, nil)
	if _, err := svc.CompleteMission(ctx, userID, id); err != nil {
		t.Fatalf("first completion: %v", err)
	}

	_, err := svc.CompleteMission(ctx, userID, id)
	var te TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("second completion err=%v, want TransitionError", err)
	}

	p, err := svc.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.XP != 30 {
		t.Fatalf("profile xp=%d after double completion, want 30", p.XP)
	}
}

func TestUpdateMissionRewardsOnlyOnTransition(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	id := addMission(t, svc, userID, DifficultyNormal, nil)

	completed := StatusCompleted
	_, reward, err := svc.UpdateMission(ctx, userID, id, UpdateMissionInput{Status: &completed})
	if err != nil {
		t.Fatalf("UpdateMission to completed: %v", err)
	}
	if reward == nil || reward.XPAwarded != 30 {
		t.Fatalf("reward=%+v, want 30 XP", reward)
	}

	// Re-sending completed with other edits is a no-op transition: the
	// fields update, no second reward.
	title := "renamed"
	updated, reward2, err := svc.UpdateMission(ctx, userID, id, UpdateMissionInput{Status: &completed, Title: &title})
	if err != nil {
		t.Fatalf("UpdateMission completed→completed: %v", err)
	}
	if reward2 != nil {
		t.Fatalf("expected no reward on repeat, got %+v", reward2)
	}
	if updated.Title != "renamed" {
		t.Fatalf("title=%q, want renamed", updated.Title)
	}

	p, err := svc.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.XP != 30 {
		t.Fatalf("profile xp=%d, want 30", p.XP)
	}
}

func TestFailMissionAndRetry(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	id := addMission(t, svc, userID, DifficultyExtreme, nil)
	if err := svc.FailMission(ctx, userID, id); err != nil {
		t.Fatalf("FailMission: %v", err)
	}

	p, err := svc.Profile(ctx, userID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.XP != 0 {
		t.Fatalf("profile xp=%d after fail, want 0", p.XP)
	}

	// Failing again is a no-op.
	if err := svc.FailMission(ctx, userID, id); err != nil {
		t.Fatalf("repeat FailMission: %v", err)
	}

	// A failed mission can still be completed for the full reward.
	res, err := svc.CompleteMission(ctx, userID, id)
	if err != nil {
		t.Fatalf("complete after fail: %v", err)
	}
	if res.XPAwarded != 100 {
		t.Fatalf("XPAwarded=%d, want 100", res.XPAwarded)
	}

	// But a completed mission cannot be failed.
	err = svc.FailMission(ctx, userID, id)
	var te TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("fail after complete err=%v, want TransitionError", err)
	}
}

func TestRewardWritesAreAtomic(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	id := addMission(t, svc, userID, DifficultyNormal, nil)

	// Remove the profile row out from under the engine. The reward cannot
	// apply, so the status change must roll back too.
	if _, err := svc.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID); err != nil {
		t.Fatalf("delete profile: %v", err)
	}

	_, err := svc.CompleteMission(ctx, userID, id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("CompleteMission err=%v, want ErrNotFound", err)
	}

	m, err := svc.MissionRepo().Get(ctx, userID, id)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if m.Status != "pending" {
		t.Fatalf("mission status=%q after rollback, want pending", m.Status)
	}
	if m.CompletedAt != nil {
		t.Fatalf("expected completed_at to stay unset after rollback")
	}
}

func TestMilestonesUnlockOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	id := addMission(t, svc, userID, DifficultyExtreme, nil)
	res, err := svc.CompleteMission(ctx, userID, id)
	if err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}

	codes := map[string]bool{}
	for i := range res.Unlocked {
		if res.Unlocked[i].Code != nil {
			codes[*res.Unlocked[i].Code] = true
		}
	}
	if !codes["first_mission"] {
		t.Fatalf("expected first_mission unlock, got %v", codes)
	}
	if !codes["level_2"] {
		t.Fatalf("expected level_2 unlock at 100 XP, got %v", codes)
	}

	// A second qualifying completion must not re-unlock anything already
	// earned.
	id2 := addMission(t, svc, userID, DifficultyEasy, nil)
	res2, err := svc.CompleteMission(ctx, userID, id2)
	if err != nil {
		t.Fatalf("second CompleteMission: %v", err)
	}
	for i := range res2.Unlocked {
		if res2.Unlocked[i].Code != nil && codes[*res2.Unlocked[i].Code] {
			t.Fatalf("milestone %s unlocked twice", *res2.Unlocked[i].Code)
		}
	}

	all, err := svc.AchievementRepo().ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	seen := map[string]int{}
	for i := range all {
		if all[i].Code != nil {
			seen[*all[i].Code]++
		}
	}
	for code, n := range seen {
		if n > 1 {
			t.Fatalf("milestone %s stored %d times", code, n)
		}
	}
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, "dup@example.com", "h1"); err != nil {
		t.Fatalf("first CreateAccount: %v", err)
	}
	_, err := svc.CreateAccount(ctx, "dup@example.com", "h2")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate CreateAccount err=%v, want ErrEmailTaken", err)
	}
}

func TestGoalManualProgressClamped(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	g, err := svc.CreateGoal(ctx, userID, CreateGoalInput{Title: "Save money", Target: 12})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	over := 99
	updated, err := svc.UpdateGoal(ctx, userID, g.ID, UpdateGoalInput{Current: &over})
	if err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	if updated.Current != 12 {
		t.Fatalf("current=%d after over-set, want clamp to 12", updated.Current)
	}

	under := -5
	updated, err = svc.UpdateGoal(ctx, userID, g.ID, UpdateGoalInput{Current: &under})
	if err != nil {
		t.Fatalf("UpdateGoal negative: %v", err)
	}
	if updated.Current != 0 {
		t.Fatalf("current=%d after negative set, want 0", updated.Current)
	}
}

func TestCreateMissionRequiresExistingGoal(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	userID := newTestUser(t, svc)

	missing := int64(9999)
	_, err := svc.CreateMission(ctx, userID, CreateMissionInput{Title: "Orphan", GoalID: &missing})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("CreateMission with missing goal err=%v, want ErrNotFound", err)
	}
}

func TestMissionsScopedToOwner(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	owner := newTestUser(t, svc)
	other, err := svc.CreateAccount(ctx, "other@example.com", "h")
	if err != nil {
		t.Fatalf("create second account: %v", err)
	}

	id := addMission(t, svc, owner, DifficultyNormal, nil)

	_, err = svc.CompleteMission(ctx, other.ID, id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user completion err=%v, want ErrNotFound", err)
	}
}
