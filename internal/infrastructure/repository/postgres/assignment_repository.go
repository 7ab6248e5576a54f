package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	qb "github.com/andrisetiawan/squadhub/internal/platform/querybuilder"
)

type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, item assignment.Assignment) error {
	model := assignmentInsertModel{
		PublicID:  item.ID,
		PlanID:    item.PlanID,
		PlayerID:  nullableID(item.Target.PlayerID),
		TeamID:    nullableID(item.Target.TeamID),
		CoachID:   item.CoachID,
		Status:    string(item.Status),
		StartDate: item.StartDate,
		EndDate:   item.EndDate,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}

	query, args, err := qb.InsertModel("training_assignments", model, "")
	if err != nil {
		return fmt.Errorf("build insert assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, assignmentID string) (assignment.Assignment, bool, error) {
	query, args, err := qb.Select("*").From("training_assignments").
		Where(qb.Eq("public_id", assignmentID)).
		ToSQL()
	if err != nil {
		return assignment.Assignment{}, false, fmt.Errorf("build get assignment by id query: %w", err)
	}

	var row assignmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return assignment.Assignment{}, false, nil
		}
		return assignment.Assignment{}, false, fmt.Errorf("get assignment by id: %w", err)
	}
	return assignmentFromRow(row), true, nil
}

func (r *AssignmentRepository) ListByPlayer(ctx context.Context, playerID string) ([]assignment.Assignment, error) {
	return r.list(ctx, qb.Eq("player_public_id", playerID))
}

func (r *AssignmentRepository) ListByTeam(ctx context.Context, teamID string) ([]assignment.Assignment, error) {
	return r.list(ctx, qb.Eq("team_public_id", teamID))
}

func (r *AssignmentRepository) ListByPlan(ctx context.Context, planID string) ([]assignment.Assignment, error) {
	return r.list(ctx, qb.Eq("plan_public_id", planID))
}

func (r *AssignmentRepository) list(ctx context.Context, condition qb.Condition) ([]assignment.Assignment, error) {
	query, args, err := qb.Select("*").From("training_assignments").
		Where(condition).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list assignments query: %w", err)
	}

	var rows []assignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	out := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, assignmentFromRow(row))
	}
	return out, nil
}

func (r *AssignmentRepository) UpdateStatus(ctx context.Context, assignmentID string, from, to assignment.Status, decidedAt time.Time) error {
	builder := qb.Update("training_assignments").
		Set("status", string(to)).
		Set("updated_at", decidedAt)
	switch to {
	case assignment.StatusActive:
		builder = builder.Set("approved_at", decidedAt)
	case assignment.StatusCancelled:
		builder = builder.Set("cancelled_at", decidedAt)
	}

	query, args, err := builder.
		Where(
			qb.Eq("public_id", assignmentID),
			qb.Eq("status", string(from)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update assignment status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update assignment status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update assignment status: %w", err)
	}
	if affected == 0 {
		return assignment.ErrStaleStatus
	}
	return nil
}
