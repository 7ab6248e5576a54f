package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/domain/progress"
	qb "github.com/andrisetiawan/squadhub/internal/platform/querybuilder"
)

type ProgressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(ctx context.Context, record progress.Record) error {
	model := progressInsertModel{
		PublicID:             record.ID,
		AssignmentID:         record.AssignmentID,
		RecordedByPlayerID:   nullableID(record.RecordedBy.PlayerID),
		RecordedByCoachID:    nullableID(record.RecordedBy.CoachID),
		Date:                 record.Date,
		CompletionPercentage: record.CompletionPercentage,
		Notes:                record.Notes,
		CreatedAt:            record.CreatedAt,
	}

	query, args, err := qb.InsertModel("training_progress", model, "")
	if err != nil {
		return fmt.Errorf("build insert progress record query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert progress record: %w", err)
	}
	return nil
}

func (r *ProgressRepository) GetByID(ctx context.Context, recordID string) (progress.Record, bool, error) {
	query, args, err := qb.Select("*").From("training_progress").
		Where(qb.Eq("public_id", recordID)).
		ToSQL()
	if err != nil {
		return progress.Record{}, false, fmt.Errorf("build get progress record by id query: %w", err)
	}

	var row progressTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return progress.Record{}, false, nil
		}
		return progress.Record{}, false, fmt.Errorf("get progress record by id: %w", err)
	}
	return progressFromRow(row), true, nil
}

func (r *ProgressRepository) ListByAssignment(ctx context.Context, assignmentID string) ([]progress.Record, error) {
	query, args, err := qb.Select("*").From("training_progress").
		Where(qb.Eq("assignment_public_id", assignmentID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list progress records query: %w", err)
	}

	var rows []progressTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list progress records: %w", err)
	}

	out := make([]progress.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, progressFromRow(row))
	}
	return out, nil
}

// Verify marks the record verified and, when completeAssignment is set,
// moves the parent assignment from ACTIVE to COMPLETED in the same
// transaction. The record row is locked first so a concurrent verify waits
// and then observes the flipped flag.
func (r *ProgressRepository) Verify(ctx context.Context, recordID, coachID, comment string, verifiedAt time.Time, completeAssignment bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin verify progress tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("assignment_public_id", "coach_verified").
		From("training_progress").
		Where(qb.Eq("public_id", recordID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock progress record query: %w", err)
	}

	var locked struct {
		AssignmentID  string `db:"assignment_public_id"`
		CoachVerified bool   `db:"coach_verified"`
	}
	if err := tx.GetContext(ctx, &locked, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("progress record %s not found", recordID)
		}
		return fmt.Errorf("lock progress record: %w", err)
	}
	if locked.CoachVerified {
		return progress.ErrAlreadyVerified
	}

	if completeAssignment {
		query, args, err = qb.Update("training_assignments").
			Set("status", string(assignment.StatusCompleted)).
			Set("updated_at", verifiedAt).
			Where(
				qb.Eq("public_id", locked.AssignmentID),
				qb.Eq("status", string(assignment.StatusActive)),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build complete assignment query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("complete assignment: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected complete assignment: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("complete assignment for verification: %w", assignment.ErrStaleStatus)
		}
	}

	query, args, err = qb.Update("training_progress").
		Set("coach_verified", true).
		Set("verified_by_coach_id", coachID).
		Set("verified_at", verifiedAt).
		Set("verification_comment", comment).
		Where(qb.Eq("public_id", recordID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build verify progress record query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("verify progress record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit verify progress tx: %w", err)
	}
	return nil
}
