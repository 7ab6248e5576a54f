package progress

import (
	"errors"
	"time"
)

var (
	// ErrAlreadyVerified guards the verify-once rule; a verified record is
	// immutable except for its comment.
	ErrAlreadyVerified = errors.New("progress record is already verified")
	// ErrInvalidActor means neither or both of the player/coach recorder
	// fields were set.
	ErrInvalidActor = errors.New("progress must be recorded by exactly one of player or coach")
)

// Actor is the tagged union of who recorded the entry: the assigned player
// (self-report) or a coach entering on the player's behalf.
type Actor struct {
	PlayerID string
	CoachID  string
}

func PlayerActor(playerID string) Actor {
	return Actor{PlayerID: playerID}
}

func CoachActor(coachID string) Actor {
	return Actor{CoachID: coachID}
}

func (a Actor) ByPlayer() bool {
	return a.PlayerID != "" && a.CoachID == ""
}

func (a Actor) ByCoach() bool {
	return a.CoachID != "" && a.PlayerID == ""
}

func (a Actor) Validate() error {
	if a.ByPlayer() || a.ByCoach() {
		return nil
	}

	return ErrInvalidActor
}

// Record is one dated completion report against an assignment. Records are
// append-only; verification flips CoachVerified exactly once.
type Record struct {
	ID                   string
	AssignmentID         string
	RecordedBy           Actor
	Date                 time.Time
	CompletionPercentage int
	Notes                string
	CoachVerified        bool
	VerifiedByCoachID    string
	VerifiedAt           *time.Time
	VerificationComment  string
	CreatedAt            time.Time
}

// ClampPercentage bounds a reported completion value to [0, 100]. Stored
// percentages are always clamped regardless of input.
func ClampPercentage(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}

	return v
}
