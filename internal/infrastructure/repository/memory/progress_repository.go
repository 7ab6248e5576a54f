package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/progress"
)

// ProgressRepository keeps the progress ledger in memory. It holds a
// reference to the assignment repository so Verify can mirror the postgres
// behavior of completing the assignment in the same transaction.
type ProgressRepository struct {
	mu          sync.RWMutex
	items       map[string]progress.Record
	order       []string
	assignments *AssignmentRepository
}

func NewProgressRepository(assignments *AssignmentRepository) *ProgressRepository {
	return &ProgressRepository{
		items:       make(map[string]progress.Record),
		assignments: assignments,
	}
}

func (r *ProgressRepository) Create(_ context.Context, record progress.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[record.ID] = record
	r.order = append(r.order, record.ID)
	return nil
}

func (r *ProgressRepository) GetByID(_ context.Context, recordID string) (progress.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[recordID]
	return item, ok, nil
}

func (r *ProgressRepository) ListByAssignment(_ context.Context, assignmentID string) ([]progress.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]progress.Record, 0)
	for _, id := range r.order {
		item := r.items[id]
		if item.AssignmentID == assignmentID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ProgressRepository) Verify(_ context.Context, recordID, coachID, comment string, verifiedAt time.Time, completeAssignment bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[recordID]
	if !ok {
		return fmt.Errorf("progress record not found: %s", recordID)
	}
	if item.CoachVerified {
		return progress.ErrAlreadyVerified
	}

	// assignment completion first; a stale assignment leaves the record
	// unverified, matching the transactional rollback in postgres.
	if completeAssignment {
		if err := r.assignments.completeFromActive(item.AssignmentID, verifiedAt); err != nil {
			return fmt.Errorf("complete assignment for verification: %w", err)
		}
	}

	item.CoachVerified = true
	item.VerifiedByCoachID = coachID
	item.VerifiedAt = &verifiedAt
	item.VerificationComment = comment
	r.items[recordID] = item
	return nil
}
