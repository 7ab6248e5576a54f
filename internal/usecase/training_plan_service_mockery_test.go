package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	trainingplanmock "github.com/andrisetiawan/squadhub/internal/mocks/domain/trainingplan"
	idgen "github.com/andrisetiawan/squadhub/internal/platform/id"
	"github.com/stretchr/testify/mock"
)

func TestTrainingPlanService_Approve_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	planRepo := trainingplanmock.NewRepository(t)
	service := NewTrainingPlanService(planRepo, idgen.NewRandomGenerator())

	planID := "plan-strength-block"
	pending := trainingplan.Plan{
		ID:            planID,
		Title:         "Strength block",
		CoachID:       "coach-bima",
		DurationWeeks: 4,
		Status:        trainingplan.StatusPendingApproval,
	}

	planRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), planID).
		Return(pending, true, nil).
		Once()
	planRepo.
		On("UpdateStatus",
			mock.MatchedBy(func(v context.Context) bool { return v != nil }),
			planID,
			trainingplan.StatusPendingApproval,
			trainingplan.StatusApproved,
			"looks solid",
			mock.AnythingOfType("time.Time"),
		).
		Return(nil).
		Once()

	got, err := service.Approve(ctx, DecideTrainingPlanInput{
		PlanID:  planID,
		CoachID: "coach-sari",
		Comment: "looks solid",
	})
	if err != nil {
		t.Fatalf("approve plan: %v", err)
	}
	if got.Status != trainingplan.StatusApproved {
		t.Fatalf("unexpected status: got=%s want=%s", got.Status, trainingplan.StatusApproved)
	}
	if got.ApprovedAt == nil {
		t.Fatalf("expected approval timestamp to be set")
	}
}

func TestTrainingPlanService_Approve_StaleStatusUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	planRepo := trainingplanmock.NewRepository(t)
	service := NewTrainingPlanService(planRepo, idgen.NewRandomGenerator())

	planID := "plan-contested"
	pending := trainingplan.Plan{
		ID:            planID,
		Title:         "Contested plan",
		CoachID:       "coach-bima",
		DurationWeeks: 2,
		Status:        trainingplan.StatusPendingApproval,
	}

	planRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), planID).
		Return(pending, true, nil).
		Once()
	planRepo.
		On("UpdateStatus",
			mock.MatchedBy(func(v context.Context) bool { return v != nil }),
			planID,
			trainingplan.StatusPendingApproval,
			trainingplan.StatusApproved,
			"",
			mock.AnythingOfType("time.Time"),
		).
		Return(trainingplan.ErrStaleStatus).
		Once()

	_, err := service.Approve(ctx, DecideTrainingPlanInput{PlanID: planID, CoachID: "coach-sari"})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for concurrent decision, got %v", err)
	}
}

func TestTrainingPlanService_Archive_KeepsRejectedPlanTerminalUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	planRepo := trainingplanmock.NewRepository(t)
	service := NewTrainingPlanService(planRepo, idgen.NewRandomGenerator())

	planID := "plan-rejected"
	rejectedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rejected := trainingplan.Plan{
		ID:            planID,
		Title:         "Rejected plan",
		CoachID:       "coach-bima",
		DurationWeeks: 3,
		Status:        trainingplan.StatusRejected,
		RejectedAt:    &rejectedAt,
	}

	planRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), planID).
		Return(rejected, true, nil).
		Once()

	_, err := service.Archive(ctx, "coach-bima", planID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState archiving a rejected plan, got %v", err)
	}
}
