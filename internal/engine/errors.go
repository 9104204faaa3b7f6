package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a missing user-scoped record (mission, goal, profile).
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when registering an already-used email.
var ErrEmailTaken = errors.New("user already exists")

// TransitionError indicates an illegal mission status change, including a
// repeated completion of an already-completed mission.
type TransitionError struct {
	From Status
	To   Status
}

func (e TransitionError) Error() string {
	if e.From == StatusCompleted && e.To == StatusCompleted {
		return "mission is already completed"
	}
	return fmt.Sprintf("cannot change mission status from %s to %s", e.From, e.To)
}

// ValidationError reports bad caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
