package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/domain/player"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	idgen "github.com/andrisetiawan/squadhub/internal/platform/id"
)

type CreateAssignmentInput struct {
	CoachID   string
	PlanID    string
	PlayerID  string
	TeamID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// AssignmentService binds approved plans to players or teams and drives the
// assignment lifecycle. Completion is not reachable here; it happens through
// progress verification.
type AssignmentService struct {
	assignmentRepo assignment.Repository
	planRepo       trainingplan.Repository
	teamRepo       team.Repository
	playerRepo     player.Repository
	idGen          idgen.Generator
	now            func() time.Time
}

func NewAssignmentService(
	assignmentRepo assignment.Repository,
	planRepo trainingplan.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		idGen:          idGen,
		now:            time.Now,
	}
}

func (s *AssignmentService) Create(ctx context.Context, input CreateAssignmentInput) (assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.Create")
	defer span.End()

	input.CoachID = strings.TrimSpace(input.CoachID)
	input.PlanID = strings.TrimSpace(input.PlanID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.CoachID == "" {
		return assignment.Assignment{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	if input.PlanID == "" {
		return assignment.Assignment{}, fmt.Errorf("%w: plan id is required", ErrInvalidInput)
	}

	target := assignment.Target{PlayerID: input.PlayerID, TeamID: input.TeamID}
	if err := target.Validate(); err != nil {
		return assignment.Assignment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	plan, exists, err := s.planRepo.GetByID(ctx, input.PlanID)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("get training plan by id: %w", err)
	}
	if !exists {
		return assignment.Assignment{}, fmt.Errorf("%w: training plan=%s", ErrNotFound, input.PlanID)
	}
	if plan.Status != trainingplan.StatusApproved {
		return assignment.Assignment{}, fmt.Errorf("%w: only approved plans can be assigned, plan is %s", ErrInvalidState, plan.Status)
	}

	if err := s.authorizeTarget(ctx, input.CoachID, target); err != nil {
		return assignment.Assignment{}, err
	}

	assignmentID, err := s.idGen.NewID()
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("generate assignment id: %w", err)
	}

	now := s.now().UTC()
	item := assignment.Assignment{
		ID:        assignmentID,
		PlanID:    input.PlanID,
		Target:    target,
		CoachID:   input.CoachID,
		Status:    assignment.StatusPending,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.ValidateWindow(); err != nil {
		return assignment.Assignment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.assignmentRepo.Create(ctx, item); err != nil {
		return assignment.Assignment{}, fmt.Errorf("create assignment: %w", err)
	}
	return item, nil
}

// Activate moves a pending assignment to ACTIVE so progress can be recorded
// against it.
func (s *AssignmentService) Activate(ctx context.Context, coachID, assignmentID string) (assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.Activate")
	defer span.End()

	return s.moveStatus(ctx, coachID, assignmentID, assignment.StatusActive)
}

func (s *AssignmentService) Cancel(ctx context.Context, coachID, assignmentID string) (assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.Cancel")
	defer span.End()

	return s.moveStatus(ctx, coachID, assignmentID, assignment.StatusCancelled)
}

func (s *AssignmentService) Get(ctx context.Context, assignmentID string) (assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.Get")
	defer span.End()

	return s.load(ctx, assignmentID)
}

func (s *AssignmentService) ListForPlayer(ctx context.Context, playerID string) ([]assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.ListForPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	items, err := s.assignmentRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list assignments by player: %w", err)
	}
	return items, nil
}

func (s *AssignmentService) ListForTeam(ctx context.Context, coachID, teamID string) ([]assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.ListForTeam")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	teamID = strings.TrimSpace(teamID)
	if coachID == "" {
		return nil, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if err := requireCoachOfTeam(ctx, s.teamRepo, coachID, teamID); err != nil {
		return nil, err
	}

	items, err := s.assignmentRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list assignments by team: %w", err)
	}
	return items, nil
}

func (s *AssignmentService) ListForPlan(ctx context.Context, planID string) ([]assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.ListForPlan")
	defer span.End()

	planID = strings.TrimSpace(planID)
	if planID == "" {
		return nil, fmt.Errorf("%w: plan id is required", ErrInvalidInput)
	}

	items, err := s.assignmentRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("list assignments by plan: %w", err)
	}
	return items, nil
}

func (s *AssignmentService) moveStatus(ctx context.Context, coachID, assignmentID string, to assignment.Status) (assignment.Assignment, error) {
	coachID = strings.TrimSpace(coachID)
	if coachID == "" {
		return assignment.Assignment{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	item, err := s.load(ctx, assignmentID)
	if err != nil {
		return assignment.Assignment{}, err
	}
	if err := s.authorizeDecision(ctx, coachID, item); err != nil {
		return assignment.Assignment{}, err
	}
	if _, err := assignment.Transition(item.Status, to); err != nil {
		return assignment.Assignment{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	now := s.now().UTC()
	if err := s.assignmentRepo.UpdateStatus(ctx, item.ID, item.Status, to, now); err != nil {
		if errors.Is(err, assignment.ErrStaleStatus) {
			return assignment.Assignment{}, fmt.Errorf("%w: assignment status changed concurrently", ErrInvalidState)
		}
		return assignment.Assignment{}, fmt.Errorf("update assignment status: %w", err)
	}

	item.Status = to
	item.UpdatedAt = now
	switch to {
	case assignment.StatusActive:
		item.ApprovedAt = &now
	case assignment.StatusCancelled:
		item.CancelledAt = &now
	}
	return item, nil
}

func (s *AssignmentService) load(ctx context.Context, assignmentID string) (assignment.Assignment, error) {
	assignmentID = strings.TrimSpace(assignmentID)
	if assignmentID == "" {
		return assignment.Assignment{}, fmt.Errorf("%w: assignment id is required", ErrInvalidInput)
	}

	item, exists, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("get assignment by id: %w", err)
	}
	if !exists {
		return assignment.Assignment{}, fmt.Errorf("%w: assignment=%s", ErrNotFound, assignmentID)
	}
	return item, nil
}

// authorizeTarget checks the coach manages the assignment target: the team
// itself for group assignments, or one of the player's active teams for
// individual ones.
func (s *AssignmentService) authorizeTarget(ctx context.Context, coachID string, target assignment.Target) error {
	if target.Group() {
		if _, exists, err := s.teamRepo.GetByID(ctx, target.TeamID); err != nil {
			return fmt.Errorf("get team by id: %w", err)
		} else if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, target.TeamID)
		}
		return requireCoachOfTeam(ctx, s.teamRepo, coachID, target.TeamID)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, target.PlayerID); err != nil {
		return fmt.Errorf("get player by id: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, target.PlayerID)
	}

	memberships, err := s.teamRepo.ListMembershipsByPlayer(ctx, target.PlayerID, false)
	if err != nil {
		return fmt.Errorf("list memberships by player: %w", err)
	}
	for _, membership := range memberships {
		ok, err := s.teamRepo.IsCoachOfTeam(ctx, coachID, membership.TeamID)
		if err != nil {
			return fmt.Errorf("check coach of team: %w", err)
		}
		if ok {
			return nil
		}
	}

	return fmt.Errorf("%w: coach=%s does not manage any of the player's teams", ErrForbidden, coachID)
}

func (s *AssignmentService) authorizeDecision(ctx context.Context, coachID string, item assignment.Assignment) error {
	if item.CoachID == coachID {
		return nil
	}
	return s.authorizeTarget(ctx, coachID, item.Target)
}
