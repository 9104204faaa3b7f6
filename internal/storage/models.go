package storage

import "time"

type User struct {
	ID        string
	Email     string
	Password  string // bcrypt hash
	CreatedAt time.Time
}

type Profile struct {
	UserID    string
	Username  string
	AvatarURL *string
	XP        int
	Level     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Mission struct {
	ID                int64
	UserID            string
	Title             string
	Description       *string
	Difficulty        string
	XP                int
	Status            string
	DueDate           *time.Time
	GoalID            *int64
	IsRecurring       bool
	RecurrencePattern *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}

type Goal struct {
	ID          int64
	UserID      string
	Title       string
	Description *string
	Target      int
	Current     int
	Category    *string
	Difficulty  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Category struct {
	ID     int64
	UserID string
	Name   string
}

type Achievement struct {
	ID          int64
	UserID      string
	Code        *string
	Title       string
	Description *string
	Icon        *string
	UnlockedAt  time.Time
}
