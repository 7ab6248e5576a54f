package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	qb "github.com/andrisetiawan/squadhub/internal/platform/querybuilder"
)

type TrainingPlanRepository struct {
	db *sqlx.DB
}

func NewTrainingPlanRepository(db *sqlx.DB) *TrainingPlanRepository {
	return &TrainingPlanRepository{db: db}
}

func (r *TrainingPlanRepository) Create(ctx context.Context, plan trainingplan.Plan) error {
	model := trainingPlanInsertModel{
		PublicID:      plan.ID,
		Title:         plan.Title,
		Description:   plan.Description,
		CoachID:       plan.CoachID,
		GeneratedByAI: plan.GeneratedByAI,
		Difficulty:    plan.Difficulty,
		DurationWeeks: plan.DurationWeeks,
		FocusArea:     plan.FocusArea,
		ClusterID:     plan.ClusterID,
		Status:        string(plan.Status),
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}

	query, args, err := qb.InsertModel("training_plans", model, "")
	if err != nil {
		return fmt.Errorf("build insert training plan query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert training plan: %w", err)
	}
	return nil
}

func (r *TrainingPlanRepository) GetByID(ctx context.Context, planID string) (trainingplan.Plan, bool, error) {
	query, args, err := qb.Select("*").From("training_plans").
		Where(qb.Eq("public_id", planID)).
		ToSQL()
	if err != nil {
		return trainingplan.Plan{}, false, fmt.Errorf("build get training plan by id query: %w", err)
	}

	var row trainingPlanTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return trainingplan.Plan{}, false, nil
		}
		return trainingplan.Plan{}, false, fmt.Errorf("get training plan by id: %w", err)
	}
	return trainingPlanFromRow(row), true, nil
}

func (r *TrainingPlanRepository) List(ctx context.Context, status trainingplan.Status) ([]trainingplan.Plan, error) {
	var conditions []qb.Condition
	if status != "" {
		conditions = append(conditions, qb.Eq("status", string(status)))
	}

	query, args, err := qb.Select("*").From("training_plans").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list training plans query: %w", err)
	}

	var rows []trainingPlanTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list training plans: %w", err)
	}

	out := make([]trainingplan.Plan, 0, len(rows))
	for _, row := range rows {
		out = append(out, trainingPlanFromRow(row))
	}
	return out, nil
}

func (r *TrainingPlanRepository) ListByCoach(ctx context.Context, coachID string) ([]trainingplan.Plan, error) {
	query, args, err := qb.Select("*").From("training_plans").
		Where(qb.Eq("coach_public_id", coachID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list training plans by coach query: %w", err)
	}

	var rows []trainingPlanTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list training plans by coach: %w", err)
	}

	out := make([]trainingplan.Plan, 0, len(rows))
	for _, row := range rows {
		out = append(out, trainingPlanFromRow(row))
	}
	return out, nil
}

func (r *TrainingPlanRepository) UpdateStatus(ctx context.Context, planID string, from, to trainingplan.Status, comment string, decidedAt time.Time) error {
	builder := qb.Update("training_plans").
		Set("status", string(to)).
		Set("updated_at", decidedAt)
	if comment != "" {
		builder = builder.Set("approval_comment", comment)
	}
	switch to {
	case trainingplan.StatusApproved:
		builder = builder.Set("approved_at", decidedAt)
	case trainingplan.StatusRejected:
		builder = builder.Set("rejected_at", decidedAt)
	}

	query, args, err := builder.
		Where(
			qb.Eq("public_id", planID),
			qb.Eq("status", string(from)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update training plan status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update training plan status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update training plan status: %w", err)
	}
	if affected == 0 {
		return trainingplan.ErrStaleStatus
	}
	return nil
}
