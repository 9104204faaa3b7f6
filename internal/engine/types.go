package engine

// Difficulty is a mission's difficulty tier. The tier fixes the mission's XP
// reward at creation time; completing the mission never re-derives it.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyNormal  Difficulty = "normal"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExtreme:
		return true
	default:
		return false
	}
}

// DefaultDifficulty is used when no tier is given.
const DefaultDifficulty Difficulty = DifficultyNormal

// Status is a mission's lifecycle state. pending is initial, completed is
// final; a failed mission can still be completed later.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether from -> to is a legal edge. Self-loops are
// allowed as no-ops (an update that does not change status); a mission never
// re-enters pending and never leaves completed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusCompleted || to == StatusFailed
	case StatusFailed:
		return to == StatusCompleted
	default:
		return false
	}
}
