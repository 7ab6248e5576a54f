package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
)

type AssignmentRepository struct {
	mu    sync.RWMutex
	items map[string]assignment.Assignment
	order []string
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{items: make(map[string]assignment.Assignment)}
}

func (r *AssignmentRepository) Create(_ context.Context, item assignment.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *AssignmentRepository) GetByID(_ context.Context, assignmentID string) (assignment.Assignment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[assignmentID]
	return item, ok, nil
}

func (r *AssignmentRepository) ListByPlayer(_ context.Context, playerID string) ([]assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0)
	for _, id := range r.order {
		item := r.items[id]
		if item.Target.PlayerID == playerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *AssignmentRepository) ListByTeam(_ context.Context, teamID string) ([]assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0)
	for _, id := range r.order {
		item := r.items[id]
		if item.Target.TeamID == teamID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *AssignmentRepository) ListByPlan(_ context.Context, planID string) ([]assignment.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0)
	for _, id := range r.order {
		item := r.items[id]
		if item.PlanID == planID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *AssignmentRepository) UpdateStatus(_ context.Context, assignmentID string, from, to assignment.Status, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updateStatusLocked(assignmentID, from, to, decidedAt)
}

// completeFromActive is used by the progress repository to mirror the
// postgres verification transaction.
func (r *AssignmentRepository) completeFromActive(assignmentID string, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.updateStatusLocked(assignmentID, assignment.StatusActive, assignment.StatusCompleted, decidedAt)
}

func (r *AssignmentRepository) updateStatusLocked(assignmentID string, from, to assignment.Status, decidedAt time.Time) error {
	item, ok := r.items[assignmentID]
	if !ok {
		return fmt.Errorf("assignment not found: %s", assignmentID)
	}
	if item.Status != from {
		return assignment.ErrStaleStatus
	}

	item.Status = to
	item.UpdatedAt = decidedAt
	switch to {
	case assignment.StatusActive:
		item.ApprovedAt = &decidedAt
	case assignment.StatusCancelled:
		item.CancelledAt = &decidedAt
	}
	r.items[assignmentID] = item
	return nil
}
