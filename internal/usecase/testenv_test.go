package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/memory"
	idgen "github.com/andrisetiawan/squadhub/internal/platform/id"
)

// workflowEnv wires every service against seeded memory repositories.
type workflowEnv struct {
	teamRepo       *memory.TeamRepository
	playerRepo     *memory.PlayerRepository
	coachRepo      *memory.CoachRepository
	clusterRepo    *memory.ClusterRepository
	requestRepo    *memory.JoinRequestRepository
	planRepo       *memory.TrainingPlanRepository
	assignmentRepo *memory.AssignmentRepository
	progressRepo   *memory.ProgressRepository

	joinRequests *JoinRequestService
	plans        *TrainingPlanService
	assignments  *AssignmentService
	progress     *ProgressService
	teams        *TeamService
}

func newWorkflowEnv(t *testing.T) *workflowEnv {
	t.Helper()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams(), memory.SeedMemberships(), memory.SeedCoachAssignments())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	coachRepo := memory.NewCoachRepository(memory.SeedCoaches())
	clusterRepo := memory.NewClusterRepository(memory.SeedClusters())
	requestRepo := memory.NewJoinRequestRepository(teamRepo)
	planRepo := memory.NewTrainingPlanRepository()
	assignmentRepo := memory.NewAssignmentRepository()
	progressRepo := memory.NewProgressRepository(assignmentRepo)

	gen := idgen.NewRandomGenerator()

	return &workflowEnv{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		coachRepo:      coachRepo,
		clusterRepo:    clusterRepo,
		requestRepo:    requestRepo,
		planRepo:       planRepo,
		assignmentRepo: assignmentRepo,
		progressRepo:   progressRepo,
		joinRequests:   NewJoinRequestService(requestRepo, teamRepo, playerRepo, gen),
		plans:          NewTrainingPlanService(planRepo, gen),
		assignments:    NewAssignmentService(assignmentRepo, planRepo, teamRepo, playerRepo, gen),
		progress:       NewProgressService(progressRepo, assignmentRepo, teamRepo, gen),
		teams:          NewTeamService(teamRepo, playerRepo, coachRepo, clusterRepo),
	}
}

// approvedPlan shortcuts plan creation plus approval for assignment tests.
func (env *workflowEnv) approvedPlan(t *testing.T, ctx context.Context, coachID string) trainingplan.Plan {
	t.Helper()

	plan, err := env.plans.CreateManual(ctx, CreateTrainingPlanInput{
		CoachID:       coachID,
		Title:         "Preseason endurance block",
		Description:   "Four weeks of aerobic base work",
		Difficulty:    "intermediate",
		DurationWeeks: 4,
		FocusArea:     "endurance",
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	plan, err = env.plans.Approve(ctx, DecideTrainingPlanInput{PlanID: plan.ID, CoachID: coachID})
	if err != nil {
		t.Fatalf("approve plan: %v", err)
	}
	return plan
}

func datePtr(t time.Time) *time.Time {
	return &t
}
