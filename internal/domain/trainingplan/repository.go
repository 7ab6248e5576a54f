package trainingplan

import (
	"context"
	"time"
)

// Repository describes training plan persistence needs from use cases.
//
// UpdateStatus is guarded on the expected current status and returns
// ErrStaleStatus when the row was mutated concurrently.
type Repository interface {
	Create(ctx context.Context, plan Plan) error
	GetByID(ctx context.Context, planID string) (Plan, bool, error)
	List(ctx context.Context, status Status) ([]Plan, error)
	ListByCoach(ctx context.Context, coachID string) ([]Plan, error)
	UpdateStatus(ctx context.Context, planID string, from, to Status, comment string, decidedAt time.Time) error
}
