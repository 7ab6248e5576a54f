package joinrequest

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

var (
	// ErrInvalidTransition means the requested status is not reachable from
	// the current one.
	ErrInvalidTransition = errors.New("join request transition not allowed")
	// ErrStaleStatus means a guarded write found the row no longer in the
	// expected status; a concurrent request won the race.
	ErrStaleStatus = errors.New("join request status changed concurrently")
)

// transitions is the full set of legal status moves. APPROVED, REJECTED and
// CANCELLED are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusCancelled: {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// Transition validates a status move against the transition table and returns
// the new status.
func Transition(current, requested Status) (Status, error) {
	allowed, ok := transitions[current]
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, current)
	}
	for _, candidate := range allowed {
		if candidate == requested {
			return requested, nil
		}
	}

	return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, requested)
}

// JoinRequest is a player's proposal to join a team. CoachID and ReviewedAt
// stay empty until a coach decides; ReviewComment is optional.
type JoinRequest struct {
	ID            string
	PlayerID      string
	TeamID        string
	CoachID       string
	Status        Status
	ReviewComment string
	CreatedAt     time.Time
	ReviewedAt    *time.Time
	UpdatedAt     time.Time
}
