package team

import (
	"errors"
	"fmt"
	"time"
)

// ErrMembershipNotFound is returned by guarded membership writes when no
// active membership row matches.
var ErrMembershipNotFound = errors.New("active membership not found")

// Team is a club side managed by one or more coaches.
type Team struct {
	ID        string
	Name      string
	ClusterID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Membership is the authoritative player<->team association. Rows are created
// by join-request approval and deactivated when a player leaves; clients never
// write them directly.
type Membership struct {
	ID        string
	PlayerID  string
	TeamID    string
	Active    bool
	JoinedAt  time.Time
	LeftAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoachAssignment records which coach manages which team. Authorization
// guards across the workflow services consult it.
type CoachAssignment struct {
	ID         string
	CoachID    string
	TeamID     string
	Active     bool
	AssignedAt time.Time
}
