package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
)

type TrainingPlanRepository struct {
	mu    sync.RWMutex
	items map[string]trainingplan.Plan
	order []string
}

func NewTrainingPlanRepository() *TrainingPlanRepository {
	return &TrainingPlanRepository{items: make(map[string]trainingplan.Plan)}
}

func (r *TrainingPlanRepository) Create(_ context.Context, plan trainingplan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[plan.ID] = plan
	r.order = append(r.order, plan.ID)
	return nil
}

func (r *TrainingPlanRepository) GetByID(_ context.Context, planID string) (trainingplan.Plan, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[planID]
	return item, ok, nil
}

func (r *TrainingPlanRepository) List(_ context.Context, status trainingplan.Status) ([]trainingplan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trainingplan.Plan, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if status != "" && item.Status != status {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TrainingPlanRepository) ListByCoach(_ context.Context, coachID string) ([]trainingplan.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trainingplan.Plan, 0)
	for _, id := range r.order {
		item := r.items[id]
		if item.CoachID == coachID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TrainingPlanRepository) UpdateStatus(_ context.Context, planID string, from, to trainingplan.Status, comment string, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[planID]
	if !ok {
		return fmt.Errorf("training plan not found: %s", planID)
	}
	if item.Status != from {
		return trainingplan.ErrStaleStatus
	}

	item.Status = to
	item.ApprovalComment = comment
	item.UpdatedAt = decidedAt
	switch to {
	case trainingplan.StatusApproved:
		item.ApprovedAt = &decidedAt
	case trainingplan.StatusRejected:
		item.RejectedAt = &decidedAt
	}
	r.items[planID] = item
	return nil
}
