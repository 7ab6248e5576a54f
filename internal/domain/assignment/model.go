package assignment

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrInvalidTransition = errors.New("assignment transition not allowed")
	ErrStaleStatus       = errors.New("assignment status changed concurrently")
	ErrInvalidTarget     = errors.New("assignment must target exactly one of player or team")
)

// transitions: COMPLETED is reached only through the progress verification
// cascade, never by a direct client command. CANCELLED is the coach escape
// hatch from both non-terminal states.
var transitions = map[Status][]Status{
	StatusPending:   {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
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

// Target is the tagged union of the two assignment scopes: an individual
// player or a whole team. Exactly one side is set.
type Target struct {
	PlayerID string
	TeamID   string
}

func IndividualTarget(playerID string) Target {
	return Target{PlayerID: playerID}
}

func GroupTarget(teamID string) Target {
	return Target{TeamID: teamID}
}

func (t Target) Individual() bool {
	return t.PlayerID != "" && t.TeamID == ""
}

func (t Target) Group() bool {
	return t.TeamID != "" && t.PlayerID == ""
}

func (t Target) Validate() error {
	if t.Individual() || t.Group() {
		return nil
	}

	return ErrInvalidTarget
}

// Assignment binds an approved training plan to a player or a team for a
// date window.
type Assignment struct {
	ID          string
	PlanID      string
	Target      Target
	CoachID     string
	Status      Status
	StartDate   *time.Time
	EndDate     *time.Time
	ApprovedAt  *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateWindow enforces a strictly ordered date window when both ends are
// set.
func (a Assignment) ValidateWindow() error {
	if a.StartDate == nil || a.EndDate == nil {
		return nil
	}
	if !a.EndDate.After(*a.StartDate) {
		return fmt.Errorf("end date must be after start date")
	}

	return nil
}
