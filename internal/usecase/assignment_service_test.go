package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/memory"
)

func TestAssignmentService_CreateRequiresApprovedPlan(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	plan, err := env.plans.CreateManual(ctx, CreateTrainingPlanInput{
		CoachID:       memory.CoachIDBima,
		Title:         "Agility ladders",
		DurationWeeks: 2,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	_, err = env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID:  memory.CoachIDBima,
		PlanID:   plan.ID,
		PlayerID: memory.PlayerIDEka,
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for pending plan, got %v", err)
	}
}

func TestAssignmentService_CreateTargetIsExclusive(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	plan := env.approvedPlan(t, ctx, memory.CoachIDBima)

	_, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID:  memory.CoachIDBima,
		PlanID:   plan.ID,
		PlayerID: memory.PlayerIDEka,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for double target, got %v", err)
	}

	_, err = env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID: memory.CoachIDBima,
		PlanID:  plan.ID,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty target, got %v", err)
	}
}

func TestAssignmentService_CreateValidatesWindow(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	plan := env.approvedPlan(t, ctx, memory.CoachIDBima)

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID:   memory.CoachIDBima,
		PlanID:    plan.ID,
		PlayerID:  memory.PlayerIDEka,
		StartDate: datePtr(start),
		EndDate:   datePtr(start),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty window, got %v", err)
	}

	item, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID:   memory.CoachIDBima,
		PlanID:    plan.ID,
		PlayerID:  memory.PlayerIDEka,
		StartDate: datePtr(start),
		EndDate:   datePtr(start.AddDate(0, 0, 28)),
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if item.Status != assignment.StatusPending {
		t.Fatalf("unexpected status: %s", item.Status)
	}
}

func TestAssignmentService_CreateForeignCoachIsForbidden(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	plan := env.approvedPlan(t, ctx, memory.CoachIDSari)

	// Eka plays for Garuda U17, which Sari does not manage.
	_, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID:  memory.CoachIDSari,
		PlanID:   plan.ID,
		PlayerID: memory.PlayerIDEka,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	_, err = env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID: memory.CoachIDSari,
		PlanID:  plan.ID,
		TeamID:  memory.TeamIDGarudaU17,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign team, got %v", err)
	}
}

func TestAssignmentService_CreateForUnknownTeamIsNotFound(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	plan := env.approvedPlan(t, ctx, memory.CoachIDBima)

	_, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID: memory.CoachIDBima,
		PlanID:  plan.ID,
		TeamID:  "team-ghost",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
}

func TestAssignmentService_Lifecycle(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	plan := env.approvedPlan(t, ctx, memory.CoachIDBima)

	item, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID: memory.CoachIDBima,
		PlanID:  plan.ID,
		TeamID:  memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	item, err = env.assignments.Activate(ctx, memory.CoachIDBima, item.ID)
	if err != nil {
		t.Fatalf("activate assignment: %v", err)
	}
	if item.Status != assignment.StatusActive || item.ApprovedAt == nil {
		t.Fatalf("unexpected active assignment: %+v", item)
	}

	// ACTIVE assignments cannot be re-activated.
	if _, err := env.assignments.Activate(ctx, memory.CoachIDBima, item.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	item, err = env.assignments.Cancel(ctx, memory.CoachIDBima, item.ID)
	if err != nil {
		t.Fatalf("cancel assignment: %v", err)
	}
	if item.Status != assignment.StatusCancelled || item.CancelledAt == nil {
		t.Fatalf("unexpected cancelled assignment: %+v", item)
	}

	if _, err := env.assignments.Cancel(ctx, memory.CoachIDBima, item.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for double cancel, got %v", err)
	}
}

func TestAssignmentService_ActivateForeignCoachIsForbidden(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	plan := env.approvedPlan(t, ctx, memory.CoachIDBima)

	item, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID: memory.CoachIDBima,
		PlanID:  plan.ID,
		TeamID:  memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	if _, err := env.assignments.Activate(ctx, memory.CoachIDSari, item.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssignmentService_ListForTeamRequiresCoach(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	if _, err := env.assignments.ListForTeam(ctx, memory.CoachIDSari, memory.TeamIDGarudaU17); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	plan := env.approvedPlan(t, ctx, memory.CoachIDBima)
	if _, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID: memory.CoachIDBima,
		PlanID:  plan.ID,
		TeamID:  memory.TeamIDGarudaU17,
	}); err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	items, err := env.assignments.ListForTeam(ctx, memory.CoachIDBima, memory.TeamIDGarudaU17)
	if err != nil {
		t.Fatalf("list for team: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(items))
	}
}
