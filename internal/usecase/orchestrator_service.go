package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/domain/progress"
	"github.com/andrisetiawan/squadhub/internal/domain/recommendation"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
)

const defaultBulkWorkers = 4

// RecommendationProvider generates training recommendations for a team. The
// HTTP client in infrastructure implements it; tests swap in stubs.
type RecommendationProvider interface {
	GenerateForTeam(ctx context.Context, teamID string, kind recommendation.Kind) (recommendation.Payload, error)
}

type AssignPlanToTeamInput struct {
	CoachID       string
	TeamID        string
	Kind          recommendation.Kind
	Difficulty    string
	DurationWeeks int
	FocusArea     string
	StartDate     *time.Time
	EndDate       *time.Time
}

type BulkAssignFailure struct {
	PlayerID string
	Reason   string
}

// BulkAssignResult reports the generate-approve-assign pipeline outcome. The
// plan is created and approved even when some per-player assignments fail;
// failures carry the player they belong to.
type BulkAssignResult struct {
	Plan          trainingplan.Plan
	Assignments   []assignment.Assignment
	AssignedCount int
	FailedCount   int
	Failures      []BulkAssignFailure
}

// PlayerTrainingStatus summarizes one roster member inside a team overview.
type PlayerTrainingStatus struct {
	Entry             RosterEntry
	ActiveAssignments int
}

type TeamTrainingOverview struct {
	Team        team.Team
	Players     []PlayerTrainingStatus
	Assignments []assignment.Assignment
	// ProgressByAssignment maps assignment id to its recorded entries.
	ProgressByAssignment map[string][]progress.Record
}

// TrainingOrchestrator composes the workflow services into coach-facing
// multi-step operations.
type TrainingOrchestrator struct {
	recommender       RecommendationProvider
	planService       *TrainingPlanService
	assignmentService *AssignmentService
	teamService       *TeamService
	progressService   *ProgressService
	teamRepo          team.Repository
	workers           int
}

func NewTrainingOrchestrator(
	recommender RecommendationProvider,
	planService *TrainingPlanService,
	assignmentService *AssignmentService,
	teamService *TeamService,
	progressService *ProgressService,
	teamRepo team.Repository,
	workers int,
) *TrainingOrchestrator {
	if workers <= 0 {
		workers = defaultBulkWorkers
	}
	return &TrainingOrchestrator{
		recommender:       recommender,
		planService:       planService,
		assignmentService: assignmentService,
		teamService:       teamService,
		progressService:   progressService,
		teamRepo:          teamRepo,
		workers:           workers,
	}
}

// AssignPlanToTeam runs the bulk pipeline: generate a recommendation for the
// team, create a plan from it, approve the plan, then assign it to every
// active roster player. Per-player assignment failures do not abort the rest
// of the roster.
func (s *TrainingOrchestrator) AssignPlanToTeam(ctx context.Context, input AssignPlanToTeamInput) (BulkAssignResult, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingOrchestrator.AssignPlanToTeam")
	defer span.End()

	input.CoachID = strings.TrimSpace(input.CoachID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.CoachID == "" {
		return BulkAssignResult{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return BulkAssignResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if err := requireCoachOfTeam(ctx, s.teamRepo, input.CoachID, input.TeamID); err != nil {
		return BulkAssignResult{}, err
	}

	teamItem, err := s.teamService.GetTeam(ctx, input.TeamID)
	if err != nil {
		return BulkAssignResult{}, err
	}

	payload, err := s.recommender.GenerateForTeam(ctx, input.TeamID, input.Kind)
	if err != nil {
		return BulkAssignResult{}, fmt.Errorf("generate recommendation for team=%s: %w", input.TeamID, err)
	}

	plan, err := s.planService.CreateFromRecommendation(ctx, CreatePlanFromRecommendationInput{
		CoachID:       input.CoachID,
		Payload:       payload,
		SubjectName:   teamItem.Name,
		Difficulty:    input.Difficulty,
		DurationWeeks: input.DurationWeeks,
		FocusArea:     input.FocusArea,
		ClusterID:     teamItem.ClusterID,
	})
	if err != nil {
		return BulkAssignResult{}, fmt.Errorf("create plan from recommendation: %w", err)
	}

	plan, err = s.planService.Approve(ctx, DecideTrainingPlanInput{
		PlanID:  plan.ID,
		CoachID: input.CoachID,
		Comment: "approved during bulk team assignment",
	})
	if err != nil {
		return BulkAssignResult{}, fmt.Errorf("approve plan=%s: %w", plan.ID, err)
	}

	roster, err := s.teamService.ListRoster(ctx, input.TeamID, false)
	if err != nil {
		return BulkAssignResult{}, fmt.Errorf("list roster for team=%s: %w", input.TeamID, err)
	}

	result := BulkAssignResult{Plan: plan}
	if len(roster) == 0 {
		return result, nil
	}

	workerCount := s.workers
	if workerCount > len(roster) {
		workerCount = len(roster)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return BulkAssignResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var assignedCount atomic.Int32
	var failedCount atomic.Int32
	var mu sync.Mutex
	assignments := make([]assignment.Assignment, 0, len(roster))
	failures := make([]BulkAssignFailure, 0)

	var workers sync.WaitGroup
	for _, entry := range roster {
		entry := entry
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			item, createErr := s.assignmentService.Create(ctx, CreateAssignmentInput{
				CoachID:   input.CoachID,
				PlanID:    plan.ID,
				PlayerID:  entry.Player.ID,
				StartDate: input.StartDate,
				EndDate:   input.EndDate,
			})
			if createErr != nil {
				failedCount.Add(1)
				mu.Lock()
				failures = append(failures, BulkAssignFailure{
					PlayerID: entry.Player.ID,
					Reason:   createErr.Error(),
				})
				mu.Unlock()
				return
			}

			assignedCount.Add(1)
			mu.Lock()
			assignments = append(assignments, item)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			failedCount.Add(1)
			mu.Lock()
			failures = append(failures, BulkAssignFailure{
				PlayerID: entry.Player.ID,
				Reason:   fmt.Sprintf("submit assignment task: %v", err),
			})
			mu.Unlock()
		}
	}
	workers.Wait()

	result.Assignments = assignments
	result.AssignedCount = int(assignedCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.Failures = failures
	return result, nil
}

// Overview fans out the roster, assignment and progress reads for a team and
// joins them into one snapshot for the coach.
func (s *TrainingOrchestrator) Overview(ctx context.Context, coachID, teamID string) (TeamTrainingOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingOrchestrator.Overview")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	teamID = strings.TrimSpace(teamID)
	if coachID == "" {
		return TeamTrainingOverview{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return TeamTrainingOverview{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if err := requireCoachOfTeam(ctx, s.teamRepo, coachID, teamID); err != nil {
		return TeamTrainingOverview{}, err
	}

	teamItem, err := s.teamService.GetTeam(ctx, teamID)
	if err != nil {
		return TeamTrainingOverview{}, err
	}

	roster, err := s.teamService.ListRoster(ctx, teamID, false)
	if err != nil {
		return TeamTrainingOverview{}, fmt.Errorf("list roster for team=%s: %w", teamID, err)
	}

	// group assignments target the team directly; individual ones hang off
	// each roster player. Fetch both sides concurrently and merge.
	var mu sync.Mutex
	seen := make(map[string]struct{})
	assignments := make([]assignment.Assignment, 0)
	appendAssignments := func(items []assignment.Assignment) {
		mu.Lock()
		defer mu.Unlock()
		for _, item := range items {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			assignments = append(assignments, item)
		}
	}

	fetch := pool.New().WithErrors().WithMaxGoroutines(s.workers)
	fetch.Go(func() error {
		items, listErr := s.assignmentService.ListForTeam(ctx, coachID, teamID)
		if listErr != nil {
			return fmt.Errorf("list assignments for team=%s: %w", teamID, listErr)
		}
		appendAssignments(items)
		return nil
	})
	for _, entry := range roster {
		entry := entry
		fetch.Go(func() error {
			items, listErr := s.assignmentService.ListForPlayer(ctx, entry.Player.ID)
			if listErr != nil {
				return fmt.Errorf("list assignments for player=%s: %w", entry.Player.ID, listErr)
			}
			appendAssignments(items)
			return nil
		})
	}
	if err := fetch.Wait(); err != nil {
		return TeamTrainingOverview{}, err
	}

	progressByAssignment := make(map[string][]progress.Record, len(assignments))
	records := pool.New().WithErrors().WithMaxGoroutines(s.workers)
	for _, item := range assignments {
		item := item
		records.Go(func() error {
			entries, listErr := s.progressService.ListForAssignment(ctx, item.ID)
			if listErr != nil {
				return fmt.Errorf("list progress for assignment=%s: %w", item.ID, listErr)
			}
			mu.Lock()
			progressByAssignment[item.ID] = entries
			mu.Unlock()
			return nil
		})
	}
	if err := records.Wait(); err != nil {
		return TeamTrainingOverview{}, err
	}

	activeByPlayer := make(map[string]int)
	for _, item := range assignments {
		if item.Status != assignment.StatusActive {
			continue
		}
		if item.Target.Individual() {
			activeByPlayer[item.Target.PlayerID]++
		}
	}

	players := make([]PlayerTrainingStatus, 0, len(roster))
	for _, entry := range roster {
		players = append(players, PlayerTrainingStatus{
			Entry:             entry,
			ActiveAssignments: activeByPlayer[entry.Player.ID],
		})
	}

	return TeamTrainingOverview{
		Team:                 teamItem,
		Players:              players,
		Assignments:          assignments,
		ProgressByAssignment: progressByAssignment,
	}, nil
}
