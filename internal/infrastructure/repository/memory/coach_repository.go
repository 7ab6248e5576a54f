package memory

import (
	"context"
	"sync"

	"github.com/andrisetiawan/squadhub/internal/domain/coach"
)

type CoachRepository struct {
	mu    sync.RWMutex
	items map[string]coach.Coach
	order []string
}

func NewCoachRepository(coaches []coach.Coach) *CoachRepository {
	items := make(map[string]coach.Coach, len(coaches))
	order := make([]string, 0, len(coaches))
	for _, item := range coaches {
		items[item.ID] = item
		order = append(order, item.ID)
	}

	return &CoachRepository{items: items, order: order}
}

func (r *CoachRepository) List(_ context.Context) ([]coach.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]coach.Coach, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *CoachRepository) GetByID(_ context.Context, coachID string) (coach.Coach, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[coachID]
	return item, ok, nil
}
