package team

import (
	"context"
	"time"
)

// Repository describes team and membership persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)

	GetMembership(ctx context.Context, playerID, teamID string) (Membership, bool, error)
	ListMembershipsByTeam(ctx context.Context, teamID string, includeInactive bool) ([]Membership, error)
	ListMembershipsByPlayer(ctx context.Context, playerID string, includeInactive bool) ([]Membership, error)
	DeactivateMembership(ctx context.Context, playerID, teamID string, leftAt time.Time) error

	IsCoachOfTeam(ctx context.Context, coachID, teamID string) (bool, error)
	ListTeamsByCoach(ctx context.Context, coachID string) ([]Team, error)
}
