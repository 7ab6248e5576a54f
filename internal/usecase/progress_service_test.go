package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/memory"
)

func activeTeamAssignment(t *testing.T, ctx context.Context, env *workflowEnv) assignment.Assignment {
	t.Helper()

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
	return item
}

func TestProgressService_RecordOnlyAgainstActiveAssignment(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	plan := env.approvedPlan(t, ctx, memory.CoachIDBima)
	pending, err := env.assignments.Create(ctx, CreateAssignmentInput{
		CoachID:  memory.CoachIDBima,
		PlanID:   plan.ID,
		PlayerID: memory.PlayerIDEka,
	})
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	_, err = env.progress.RecordByPlayer(ctx, memory.PlayerIDEka, RecordProgressInput{
		AssignmentID:         pending.ID,
		CompletionPercentage: 10,
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for pending assignment, got %v", err)
	}
}

func TestProgressService_RecordClampsPercentage(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	item := activeTeamAssignment(t, ctx, env)

	over, err := env.progress.RecordByPlayer(ctx, memory.PlayerIDEka, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: 140,
	})
	if err != nil {
		t.Fatalf("record progress: %v", err)
	}
	if over.CompletionPercentage != 100 {
		t.Fatalf("expected clamp to 100, got %d", over.CompletionPercentage)
	}

	under, err := env.progress.RecordByPlayer(ctx, memory.PlayerIDEka, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: -5,
	})
	if err != nil {
		t.Fatalf("record progress: %v", err)
	}
	if under.CompletionPercentage != 0 {
		t.Fatalf("expected clamp to 0, got %d", under.CompletionPercentage)
	}
}

func TestProgressService_RecordByUncoveredPlayerIsForbidden(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	item := activeTeamAssignment(t, ctx, env)

	// Yoga plays for Harimau U17, not the targeted Garuda U17.
	_, err := env.progress.RecordByPlayer(ctx, memory.PlayerIDYoga, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: 40,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProgressService_RecordByCoach(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	item := activeTeamAssignment(t, ctx, env)

	record, err := env.progress.RecordByCoach(ctx, memory.CoachIDBima, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: 60,
		Notes:                "observed during drills",
	})
	if err != nil {
		t.Fatalf("record by coach: %v", err)
	}
	if !record.RecordedBy.ByCoach() {
		t.Fatalf("unexpected recorder: %+v", record.RecordedBy)
	}

	if _, err := env.progress.RecordByCoach(ctx, memory.CoachIDSari, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: 60,
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign coach, got %v", err)
	}
}

func TestProgressService_VerifyOnce(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	item := activeTeamAssignment(t, ctx, env)

	record, err := env.progress.RecordByPlayer(ctx, memory.PlayerIDEka, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: 50,
	})
	if err != nil {
		t.Fatalf("record progress: %v", err)
	}

	verified, err := env.progress.Verify(ctx, VerifyProgressInput{
		RecordID: record.ID,
		CoachID:  memory.CoachIDBima,
		Comment:  "checked",
	})
	if err != nil {
		t.Fatalf("verify record: %v", err)
	}
	if !verified.CoachVerified || verified.VerifiedAt == nil {
		t.Fatalf("unexpected verified record: %+v", verified)
	}

	if _, err := env.progress.Verify(ctx, VerifyProgressInput{
		RecordID: record.ID,
		CoachID:  memory.CoachIDBima,
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for second verify, got %v", err)
	}

	// a 50% verification leaves the assignment active.
	current, _, err := env.assignmentRepo.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if current.Status != assignment.StatusActive {
		t.Fatalf("unexpected assignment status: %s", current.Status)
	}
}

func TestProgressService_VerifyFullCompletionCompletesAssignment(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	item := activeTeamAssignment(t, ctx, env)

	record, err := env.progress.RecordByPlayer(ctx, memory.PlayerIDEka, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: 100,
	})
	if err != nil {
		t.Fatalf("record progress: %v", err)
	}

	if _, err := env.progress.Verify(ctx, VerifyProgressInput{
		RecordID: record.ID,
		CoachID:  memory.CoachIDBima,
	}); err != nil {
		t.Fatalf("verify record: %v", err)
	}

	current, _, err := env.assignmentRepo.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if current.Status != assignment.StatusCompleted {
		t.Fatalf("expected COMPLETED assignment, got %s", current.Status)
	}

	// no further progress once the assignment completed.
	if _, err := env.progress.RecordByPlayer(ctx, memory.PlayerIDEka, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: 10,
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestProgressService_VerifyForeignCoachIsForbidden(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()
	item := activeTeamAssignment(t, ctx, env)

	record, err := env.progress.RecordByPlayer(ctx, memory.PlayerIDEka, RecordProgressInput{
		AssignmentID:         item.ID,
		CompletionPercentage: 80,
	})
	if err != nil {
		t.Fatalf("record progress: %v", err)
	}

	if _, err := env.progress.Verify(ctx, VerifyProgressInput{
		RecordID: record.ID,
		CoachID:  memory.CoachIDSari,
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
