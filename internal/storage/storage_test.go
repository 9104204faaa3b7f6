package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertTestUser(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	ctx := context.Background()
	users := NewUserRepo(db)
	if err := users.Insert(ctx, User{ID: id, Email: id + "@example.com", Password: "hash"}); err != nil {
		t.Fatalf("insert user: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening runs the migrations against an existing schema.
	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	_ = db.Close()
}

func TestMissionPartialUpdateKeepsFields(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	insertTestUser(t, db, "u1")

	missions := NewMissionRepo(db)
	desc := "original description"
	id, err := missions.Insert(ctx, MissionInsert{
		UserID:      "u1",
		Title:       "Initial",
		Description: &desc,
		Difficulty:  "hard",
		XP:          50,
		Status:      "pending",
	})
	if err != nil {
		t.Fatalf("insert mission: %v", err)
	}

	title := "Renamed"
	if err := missions.Update(ctx, "u1", id, MissionUpdate{Title: &title}); err != nil {
		t.Fatalf("update mission: %v", err)
	}

	m, err := missions.Get(ctx, "u1", id)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if m.Title != "Renamed" {
		t.Fatalf("title=%q, want Renamed", m.Title)
	}
	if m.Description == nil || *m.Description != desc {
		t.Fatalf("description lost on partial update: %v", m.Description)
	}
	if m.Difficulty != "hard" || m.XP != 50 {
		t.Fatalf("difficulty/xp changed: %s/%d", m.Difficulty, m.XP)
	}
}

func TestMissionUpdateClearsGoalLink(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	insertTestUser(t, db, "u1")

	goals := NewGoalRepo(db)
	gid, err := goals.Insert(ctx, GoalInsert{UserID: "u1", Title: "Goal", Target: 10, Difficulty: "normal"})
	if err != nil {
		t.Fatalf("insert goal: %v", err)
	}

	missions := NewMissionRepo(db)
	id, err := missions.Insert(ctx, MissionInsert{
		UserID:     "u1",
		Title:      "Linked",
		Difficulty: "easy",
		XP:         10,
		Status:     "pending",
		GoalID:     &gid,
	})
	if err != nil {
		t.Fatalf("insert mission: %v", err)
	}

	// goal_id is written as given, so a nil unlinks.
	if err := missions.Update(ctx, "u1", id, MissionUpdate{GoalID: nil}); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	m, err := missions.Get(ctx, "u1", id)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if m.GoalID != nil {
		t.Fatalf("goal_id=%v, want nil", *m.GoalID)
	}
}

func TestDeleteReportsMissingRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	insertTestUser(t, db, "u1")

	missions := NewMissionRepo(db)
	deleted, err := missions.Delete(ctx, "u1", 404)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted {
		t.Fatalf("expected deleted=false for missing mission")
	}

	goals := NewGoalRepo(db)
	deleted, err = goals.Delete(ctx, "u1", 404)
	if err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if deleted {
		t.Fatalf("expected deleted=false for missing goal")
	}
}

func TestMilestoneInsertIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	insertTestUser(t, db, "u1")

	achievements := NewAchievementRepo(db)
	code := "level_2"
	in := AchievementInsert{
		UserID: "u1",
		Code:   &code,
		Title:  "Getting Started",
	}
	inserted, err := achievements.InsertMilestone(ctx, in)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !inserted {
		t.Fatalf("expected first insert to report true")
	}
	inserted, err = achievements.InsertMilestone(ctx, in)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if inserted {
		t.Fatalf("expected second insert to report false")
	}

	list, err := achievements.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("achievement rows=%d, want 1", len(list))
	}
}
