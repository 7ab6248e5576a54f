package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/domain/recommendation"
	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/memory"
)

type stubRecommender struct {
	payload recommendation.Payload
	err     error
	calls   int
}

func (s *stubRecommender) GenerateForTeam(_ context.Context, _ string, kind recommendation.Kind) (recommendation.Payload, error) {
	s.calls++
	if s.err != nil {
		return recommendation.Payload{}, s.err
	}
	payload := s.payload
	if payload.Kind == "" {
		payload.Kind = kind
	}
	return payload, nil
}

func newOrchestrator(env *workflowEnv, recommender RecommendationProvider) *TrainingOrchestrator {
	return NewTrainingOrchestrator(
		recommender,
		env.plans,
		env.assignments,
		env.teams,
		env.progress,
		env.teamRepo,
		2,
	)
}

func TestTrainingOrchestrator_AssignPlanToTeam(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	recommender := &stubRecommender{payload: recommendation.Payload{
		Kind:     recommendation.KindTeamTactical,
		Tactical: "rondo-heavy possession drills with counter-press triggers",
	}}
	orchestrator := newOrchestrator(env, recommender)

	result, err := orchestrator.AssignPlanToTeam(ctx, AssignPlanToTeamInput{
		CoachID:       memory.CoachIDBima,
		TeamID:        memory.TeamIDGarudaU17,
		Kind:          recommendation.KindTeamTactical,
		Difficulty:    "intermediate",
		DurationWeeks: 3,
		FocusArea:     "tactical",
	})
	if err != nil {
		t.Fatalf("assign plan to team: %v", err)
	}

	if recommender.calls != 1 {
		t.Fatalf("recommender called %d times, want 1", recommender.calls)
	}
	if result.Plan.Status != trainingplan.StatusApproved {
		t.Fatalf("plan not approved: %s", result.Plan.Status)
	}
	if !result.Plan.GeneratedByAI {
		t.Fatal("plan not flagged AI generated")
	}

	// Garuda U17 has two active members: Eka and Dimas.
	if result.AssignedCount != 2 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	for _, item := range result.Assignments {
		if !item.Target.Individual() {
			t.Fatalf("expected individual target, got %+v", item.Target)
		}
		if item.Status != assignment.StatusPending {
			t.Fatalf("unexpected assignment status: %s", item.Status)
		}
		if item.PlanID != result.Plan.ID {
			t.Fatalf("assignment bound to wrong plan: %s", item.PlanID)
		}
	}

	forEka, err := env.assignments.ListForPlayer(ctx, memory.PlayerIDEka)
	if err != nil {
		t.Fatalf("list for player: %v", err)
	}
	if len(forEka) != 1 {
		t.Fatalf("expected 1 assignment for Eka, got %d", len(forEka))
	}
}

func TestTrainingOrchestrator_AssignPlanRequiresTeamCoach(t *testing.T) {
	env := newWorkflowEnv(t)
	orchestrator := newOrchestrator(env, &stubRecommender{})

	_, err := orchestrator.AssignPlanToTeam(t.Context(), AssignPlanToTeamInput{
		CoachID:       memory.CoachIDSari,
		TeamID:        memory.TeamIDGarudaU17,
		Kind:          recommendation.KindFull,
		DurationWeeks: 2,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTrainingOrchestrator_AssignPlanSurfacesRecommenderFailure(t *testing.T) {
	env := newWorkflowEnv(t)
	recommender := &stubRecommender{err: fmt.Errorf("%w: recommendation service timeout", ErrDependencyUnavailable)}
	orchestrator := newOrchestrator(env, recommender)

	_, err := orchestrator.AssignPlanToTeam(t.Context(), AssignPlanToTeamInput{
		CoachID:       memory.CoachIDBima,
		TeamID:        memory.TeamIDGarudaU17,
		Kind:          recommendation.KindFull,
		DurationWeeks: 2,
	})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	// the pipeline failed before plan creation.
	plans, listErr := env.plans.List(t.Context(), "")
	if listErr != nil {
		t.Fatalf("list plans: %v", listErr)
	}
	if len(plans) != 0 {
		t.Fatalf("expected no plans, got %d", len(plans))
	}
}

func TestTrainingOrchestrator_Overview(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	recommender := &stubRecommender{payload: recommendation.Payload{
		Kind:    recommendation.KindFull,
		Summary: "balanced development block",
	}}
	orchestrator := newOrchestrator(env, recommender)

	result, err := orchestrator.AssignPlanToTeam(ctx, AssignPlanToTeamInput{
		CoachID:       memory.CoachIDBima,
		TeamID:        memory.TeamIDGarudaU17,
		Kind:          recommendation.KindFull,
		DurationWeeks: 4,
	})
	if err != nil {
		t.Fatalf("assign plan to team: %v", err)
	}

	var ekaAssignment assignment.Assignment
	for _, item := range result.Assignments {
		if item.Target.PlayerID == memory.PlayerIDEka {
			ekaAssignment = item
		}
		if _, err := env.assignments.Activate(ctx, memory.CoachIDBima, item.ID); err != nil {
			t.Fatalf("activate assignment: %v", err)
		}
	}

	if _, err := env.progress.RecordByPlayer(ctx, memory.PlayerIDEka, RecordProgressInput{
		AssignmentID:         ekaAssignment.ID,
		CompletionPercentage: 30,
	}); err != nil {
		t.Fatalf("record progress: %v", err)
	}

	overview, err := orchestrator.Overview(ctx, memory.CoachIDBima, memory.TeamIDGarudaU17)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.Team.ID != memory.TeamIDGarudaU17 {
		t.Fatalf("unexpected team: %s", overview.Team.ID)
	}
	if len(overview.Players) != 2 {
		t.Fatalf("expected 2 roster entries, got %d", len(overview.Players))
	}
	for _, status := range overview.Players {
		if status.ActiveAssignments != 1 {
			t.Fatalf("player %s active assignments = %d, want 1", status.Entry.Player.ID, status.ActiveAssignments)
		}
	}
	if len(overview.ProgressByAssignment[ekaAssignment.ID]) != 1 {
		t.Fatalf("expected 1 progress record for Eka's assignment")
	}

	if _, err := orchestrator.Overview(ctx, memory.CoachIDSari, memory.TeamIDGarudaU17); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
