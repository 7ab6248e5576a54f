package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/joinrequest"
	"github.com/andrisetiawan/squadhub/internal/domain/player"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
	"github.com/andrisetiawan/squadhub/internal/domain/user"
	idgen "github.com/andrisetiawan/squadhub/internal/platform/id"
)

type CreateJoinRequestInput struct {
	PlayerID string
	TeamID   string
}

type DecideJoinRequestInput struct {
	RequestID string
	CoachID   string
	Comment   string
}

// JoinRequestService drives the join request lifecycle. Approval is the only
// path that creates team memberships.
type JoinRequestService struct {
	requestRepo joinrequest.Repository
	teamRepo    team.Repository
	playerRepo  player.Repository
	idGen       idgen.Generator
	now         func() time.Time
}

func NewJoinRequestService(
	requestRepo joinrequest.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
) *JoinRequestService {
	return &JoinRequestService{
		requestRepo: requestRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

func (s *JoinRequestService) Create(ctx context.Context, input CreateJoinRequestInput) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Create")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.PlayerID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get player by id: %w", err)
	} else if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}
	if _, exists, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get team by id: %w", err)
	} else if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	active, err := hasActiveMembership(ctx, s.teamRepo, input.PlayerID, input.TeamID)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}
	if active {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: player already belongs to this team", ErrConflict)
	}

	requestID, err := s.idGen.NewID()
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("generate join request id: %w", err)
	}

	now := s.now().UTC()
	request := joinrequest.JoinRequest{
		ID:        requestID,
		PlayerID:  input.PlayerID,
		TeamID:    input.TeamID,
		Status:    joinrequest.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		if isDuplicateConstraintError(err) {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: a pending join request for this team already exists", ErrConflict)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("create join request: %w", err)
	}

	return request, nil
}

// Approve moves a pending request to APPROVED and writes the membership row
// in the same repository transaction. It refuses when the player already has
// an active membership in the team so a single player never holds two.
func (s *JoinRequestService) Approve(ctx context.Context, input DecideJoinRequestInput) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Approve")
	defer span.End()

	input.RequestID = strings.TrimSpace(input.RequestID)
	input.CoachID = strings.TrimSpace(input.CoachID)
	input.Comment = strings.TrimSpace(input.Comment)

	request, err := s.loadForDecision(ctx, input.RequestID, input.CoachID, joinrequest.StatusApproved)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}

	active, err := hasActiveMembership(ctx, s.teamRepo, request.PlayerID, request.TeamID)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}
	if active {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: player already has an active membership in this team", ErrConflict)
	}

	membershipID, err := s.idGen.NewID()
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("generate membership id: %w", err)
	}

	now := s.now().UTC()
	if err := s.requestRepo.Approve(ctx, request.ID, input.CoachID, membershipID, input.Comment, now); err != nil {
		if errors.Is(err, joinrequest.ErrStaleStatus) {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request is no longer pending", ErrInvalidState)
		}
		if isDuplicateConstraintError(err) {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: player already has an active membership in this team", ErrConflict)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("approve join request: %w", err)
	}

	request.Status = joinrequest.StatusApproved
	request.CoachID = input.CoachID
	request.ReviewComment = input.Comment
	request.ReviewedAt = &now
	request.UpdatedAt = now
	return request, nil
}

func (s *JoinRequestService) Reject(ctx context.Context, input DecideJoinRequestInput) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Reject")
	defer span.End()

	input.RequestID = strings.TrimSpace(input.RequestID)
	input.CoachID = strings.TrimSpace(input.CoachID)
	input.Comment = strings.TrimSpace(input.Comment)

	request, err := s.loadForDecision(ctx, input.RequestID, input.CoachID, joinrequest.StatusRejected)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}

	now := s.now().UTC()
	if err := s.requestRepo.Decide(ctx, request.ID, joinrequest.StatusRejected, input.CoachID, input.Comment, now); err != nil {
		if errors.Is(err, joinrequest.ErrStaleStatus) {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request is no longer pending", ErrInvalidState)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("reject join request: %w", err)
	}

	request.Status = joinrequest.StatusRejected
	request.CoachID = input.CoachID
	request.ReviewComment = input.Comment
	request.ReviewedAt = &now
	request.UpdatedAt = now
	return request, nil
}

// Cancel lets the requesting player withdraw their own pending request.
func (s *JoinRequestService) Cancel(ctx context.Context, playerID, requestID string) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Cancel")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	requestID = strings.TrimSpace(requestID)
	if playerID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if requestID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}

	request, exists, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get join request by id: %w", err)
	}
	if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request=%s", ErrNotFound, requestID)
	}
	if request.PlayerID != playerID {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request belongs to another player", ErrForbidden)
	}
	if _, err := joinrequest.Transition(request.Status, joinrequest.StatusCancelled); err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	now := s.now().UTC()
	if err := s.requestRepo.Decide(ctx, request.ID, joinrequest.StatusCancelled, "", "", now); err != nil {
		if errors.Is(err, joinrequest.ErrStaleStatus) {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request is no longer pending", ErrInvalidState)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("cancel join request: %w", err)
	}

	request.Status = joinrequest.StatusCancelled
	request.ReviewedAt = &now
	request.UpdatedAt = now
	return request, nil
}

// Get returns a request visible to the actor: the requesting player or a
// coach of the target team.
func (s *JoinRequestService) Get(ctx context.Context, actor user.Principal, requestID string) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Get")
	defer span.End()

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}

	request, exists, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get join request by id: %w", err)
	}
	if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request=%s", ErrNotFound, requestID)
	}

	if actor.IsPlayer() && actor.PlayerID == request.PlayerID {
		return request, nil
	}
	if actor.IsCoach() {
		if err := requireCoachOfTeam(ctx, s.teamRepo, actor.CoachID, request.TeamID); err == nil {
			return request, nil
		}
	}

	return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request is not visible to this user", ErrForbidden)
}

func (s *JoinRequestService) ListForPlayer(ctx context.Context, playerID string) ([]joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.ListForPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	items, err := s.requestRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list join requests by player: %w", err)
	}
	return items, nil
}

// ListForTeam returns a team's requests to its coach, optionally filtered by
// status. An empty status means all.
func (s *JoinRequestService) ListForTeam(ctx context.Context, coachID, teamID string, status joinrequest.Status) ([]joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.ListForTeam")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	teamID = strings.TrimSpace(teamID)
	if coachID == "" {
		return nil, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown join request status %q", ErrInvalidInput, status)
	}

	if err := requireCoachOfTeam(ctx, s.teamRepo, coachID, teamID); err != nil {
		return nil, err
	}

	items, err := s.requestRepo.ListByTeam(ctx, teamID, status)
	if err != nil {
		return nil, fmt.Errorf("list join requests by team: %w", err)
	}
	return items, nil
}

func (s *JoinRequestService) loadForDecision(ctx context.Context, requestID, coachID string, to joinrequest.Status) (joinrequest.JoinRequest, error) {
	if requestID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}
	if coachID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	request, exists, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get join request by id: %w", err)
	}
	if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: join request=%s", ErrNotFound, requestID)
	}

	if err := requireCoachOfTeam(ctx, s.teamRepo, coachID, request.TeamID); err != nil {
		return joinrequest.JoinRequest{}, err
	}
	if _, err := joinrequest.Transition(request.Status, to); err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	return request, nil
}
