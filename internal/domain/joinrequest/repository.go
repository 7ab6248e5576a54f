package joinrequest

import (
	"context"
	"time"
)

// Repository describes join request persistence needs from use cases.
//
// Approve runs the status update and the membership write in one storage
// transaction: a request must never read APPROVED without its membership row.
// Both Approve and Decide are guarded on the current PENDING status and
// return ErrStaleStatus when the row was mutated concurrently.
type Repository interface {
	Create(ctx context.Context, req JoinRequest) error
	GetByID(ctx context.Context, requestID string) (JoinRequest, bool, error)
	ListByPlayer(ctx context.Context, playerID string) ([]JoinRequest, error)
	ListByTeam(ctx context.Context, teamID string, status Status) ([]JoinRequest, error)
	Approve(ctx context.Context, requestID, coachID, membershipID, comment string, reviewedAt time.Time) error
	Decide(ctx context.Context, requestID string, to Status, coachID, comment string, reviewedAt time.Time) error
}
