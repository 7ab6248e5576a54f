package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/joinrequest"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
)

// JoinRequestRepository keeps requests in memory. It holds a reference to the
// team repository so Approve can mirror the postgres behavior of writing the
// membership row in the same transaction as the status flip.
type JoinRequestRepository struct {
	mu    sync.RWMutex
	items map[string]joinrequest.JoinRequest
	teams *TeamRepository
}

func NewJoinRequestRepository(teams *TeamRepository) *JoinRequestRepository {
	return &JoinRequestRepository{
		items: make(map[string]joinrequest.JoinRequest),
		teams: teams,
	}
}

func (r *JoinRequestRepository) Create(_ context.Context, req joinrequest.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// emulates UNIQUE(player_id, team_id, status).
	for _, existing := range r.items {
		if existing.PlayerID == req.PlayerID && existing.TeamID == req.TeamID && existing.Status == req.Status {
			return fmt.Errorf("pq: duplicate key value violates unique constraint %q", "join_requests_player_team_status_key")
		}
	}

	r.items[req.ID] = req
	return nil
}

func (r *JoinRequestRepository) GetByID(_ context.Context, requestID string) (joinrequest.JoinRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[requestID]
	return item, ok, nil
}

func (r *JoinRequestRepository) ListByPlayer(_ context.Context, playerID string) ([]joinrequest.JoinRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]joinrequest.JoinRequest, 0)
	for _, item := range r.items {
		if item.PlayerID == playerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *JoinRequestRepository) ListByTeam(_ context.Context, teamID string, status joinrequest.Status) ([]joinrequest.JoinRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]joinrequest.JoinRequest, 0)
	for _, item := range r.items {
		if item.TeamID != teamID {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *JoinRequestRepository) Approve(_ context.Context, requestID, coachID, membershipID, comment string, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[requestID]
	if !ok {
		return fmt.Errorf("join request not found: %s", requestID)
	}
	if item.Status != joinrequest.StatusPending {
		return joinrequest.ErrStaleStatus
	}

	// membership write first so a unique violation leaves the request pending.
	membership := team.Membership{
		ID:        membershipID,
		PlayerID:  item.PlayerID,
		TeamID:    item.TeamID,
		Active:    true,
		JoinedAt:  reviewedAt,
		CreatedAt: reviewedAt,
		UpdatedAt: reviewedAt,
	}
	if err := r.teams.insertMembership(membership); err != nil {
		return err
	}

	item.Status = joinrequest.StatusApproved
	item.CoachID = coachID
	item.ReviewComment = comment
	item.ReviewedAt = &reviewedAt
	item.UpdatedAt = reviewedAt
	r.items[requestID] = item
	return nil
}

func (r *JoinRequestRepository) Decide(_ context.Context, requestID string, to joinrequest.Status, coachID, comment string, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[requestID]
	if !ok {
		return fmt.Errorf("join request not found: %s", requestID)
	}
	if item.Status != joinrequest.StatusPending {
		return joinrequest.ErrStaleStatus
	}

	item.Status = to
	item.CoachID = coachID
	item.ReviewComment = comment
	item.ReviewedAt = &reviewedAt
	item.UpdatedAt = reviewedAt
	r.items[requestID] = item
	return nil
}
