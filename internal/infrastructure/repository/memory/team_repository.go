package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/team"
)

type TeamRepository struct {
	mu          sync.RWMutex
	teams       map[string]team.Team
	order       []string
	memberships []team.Membership
	coaches     []team.CoachAssignment
}

func NewTeamRepository(teams []team.Team, memberships []team.Membership, coaches []team.CoachAssignment) *TeamRepository {
	byID := make(map[string]team.Team, len(teams))
	order := make([]string, 0, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
		order = append(order, item.ID)
	}

	return &TeamRepository{
		teams:       byID,
		order:       order,
		memberships: append([]team.Membership(nil), memberships...),
		coaches:     append([]team.CoachAssignment(nil), coaches...),
	}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.teams[id])
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetMembership(_ context.Context, playerID, teamID string) (team.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// prefer the active row when historical rows exist for the same pair.
	var found team.Membership
	var ok bool
	for _, membership := range r.memberships {
		if membership.PlayerID != playerID || membership.TeamID != teamID {
			continue
		}
		if membership.Active {
			return membership, true, nil
		}
		found = membership
		ok = true
	}
	return found, ok, nil
}

func (r *TeamRepository) ListMembershipsByTeam(_ context.Context, teamID string, includeInactive bool) ([]team.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Membership, 0)
	for _, membership := range r.memberships {
		if membership.TeamID != teamID {
			continue
		}
		if !membership.Active && !includeInactive {
			continue
		}
		out = append(out, membership)
	}
	return out, nil
}

func (r *TeamRepository) ListMembershipsByPlayer(_ context.Context, playerID string, includeInactive bool) ([]team.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Membership, 0)
	for _, membership := range r.memberships {
		if membership.PlayerID != playerID {
			continue
		}
		if !membership.Active && !includeInactive {
			continue
		}
		out = append(out, membership)
	}
	return out, nil
}

func (r *TeamRepository) DeactivateMembership(_ context.Context, playerID, teamID string, leftAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.memberships {
		m := &r.memberships[idx]
		if m.PlayerID != playerID || m.TeamID != teamID || !m.Active {
			continue
		}
		m.Active = false
		m.LeftAt = &leftAt
		m.UpdatedAt = leftAt
		return nil
	}
	return team.ErrMembershipNotFound
}

func (r *TeamRepository) IsCoachOfTeam(_ context.Context, coachID, teamID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ca := range r.coaches {
		if ca.CoachID == coachID && ca.TeamID == teamID && ca.Active {
			return true, nil
		}
	}
	return false, nil
}

func (r *TeamRepository) ListTeamsByCoach(_ context.Context, coachID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, ca := range r.coaches {
		if ca.CoachID != coachID || !ca.Active {
			continue
		}
		if item, ok := r.teams[ca.TeamID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// insertMembership emulates the partial unique index on active memberships:
// a second active row for the same player and team fails the way lib/pq
// reports a unique violation.
func (r *TeamRepository) insertMembership(membership team.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.memberships {
		if existing.PlayerID == membership.PlayerID && existing.TeamID == membership.TeamID && existing.Active {
			return fmt.Errorf("pq: duplicate key value violates unique constraint %q", "team_memberships_active_player_team_key")
		}
	}
	r.memberships = append(r.memberships, membership)
	return nil
}
