package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrisetiawan/squadhub/internal/domain/team"
)

// requireCoachOfTeam gates every coach decision on an active coach
// assignment for the team being acted on.
func requireCoachOfTeam(ctx context.Context, teams team.Repository, coachID, teamID string) error {
	ok, err := teams.IsCoachOfTeam(ctx, coachID, teamID)
	if err != nil {
		return fmt.Errorf("check coach of team: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: coach=%s does not manage team=%s", ErrForbidden, coachID, teamID)
	}

	return nil
}

// hasActiveMembership reports whether the player currently belongs to the
// team through a non-deactivated membership row.
func hasActiveMembership(ctx context.Context, teams team.Repository, playerID, teamID string) (bool, error) {
	membership, exists, err := teams.GetMembership(ctx, playerID, teamID)
	if err != nil {
		return false, fmt.Errorf("get team membership: %w", err)
	}

	return exists && membership.Active, nil
}

func isDuplicateConstraintError(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "duplicate key value violates unique constraint")
}

func isNotFoundText(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
