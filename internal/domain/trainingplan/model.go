package trainingplan

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusRejected        Status = "REJECTED"
	StatusArchived        Status = "ARCHIVED"
)

var (
	ErrInvalidTransition = errors.New("training plan transition not allowed")
	ErrStaleStatus       = errors.New("training plan status changed concurrently")
)

// transitions keeps the whole approval lifecycle in one place. A rejected
// plan is never resurrected; a fresh plan must be created instead so the
// approval history stays auditable.
var transitions = map[Status][]Status{
	StatusDraft:           {StatusPendingApproval},
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusArchived},
	StatusRejected:        {},
	StatusArchived:        {},
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

// Plan is a reusable, approvable training program. CoachID is empty for
// AI-generated plans that were seeded without an authoring coach.
type Plan struct {
	ID              string
	Title           string
	Description     string
	CoachID         string
	GeneratedByAI   bool
	Difficulty      string
	DurationWeeks   int
	FocusArea       string
	ClusterID       string
	Status          Status
	ApprovalComment string
	CreatedAt       time.Time
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	UpdatedAt       time.Time
}
