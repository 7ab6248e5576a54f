package assignment

import (
	"context"
	"time"
)

// Repository describes assignment persistence needs from use cases.
//
// UpdateStatus is guarded on the expected current status and returns
// ErrStaleStatus on concurrent mutation. The ACTIVE -> COMPLETED move is
// performed by the progress repository inside the verification transaction,
// not through this interface.
type Repository interface {
	Create(ctx context.Context, item Assignment) error
	GetByID(ctx context.Context, assignmentID string) (Assignment, bool, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Assignment, error)
	ListByTeam(ctx context.Context, teamID string) ([]Assignment, error)
	ListByPlan(ctx context.Context, planID string) ([]Assignment, error)
	UpdateStatus(ctx context.Context, assignmentID string, from, to Status, decidedAt time.Time) error
}
