package progress

import (
	"context"
	"time"
)

// Repository describes progress ledger persistence needs from use cases.
//
// Verify flips CoachVerified in the same storage transaction that completes
// the parent assignment when completeAssignment is set: a verified 100%
// record must never exist against a non-completed assignment. It returns
// ErrAlreadyVerified when the record was verified concurrently and
// assignment.ErrStaleStatus (wrapped) when the assignment left ACTIVE before
// the completion write.
type Repository interface {
	Create(ctx context.Context, record Record) error
	GetByID(ctx context.Context, recordID string) (Record, bool, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]Record, error)
	Verify(ctx context.Context, recordID, coachID, comment string, verifiedAt time.Time, completeAssignment bool) error
}
