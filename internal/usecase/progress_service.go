package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/domain/progress"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
	idgen "github.com/andrisetiawan/squadhub/internal/platform/id"
)

type RecordProgressInput struct {
	AssignmentID         string
	Date                 time.Time
	CompletionPercentage int
	Notes                string
}

type VerifyProgressInput struct {
	RecordID string
	CoachID  string
	Comment  string
}

// ProgressService keeps the append-only progress ledger. Records can only be
// written against ACTIVE assignments; verification of a 100% record completes
// the assignment inside the same repository transaction.
type ProgressService struct {
	progressRepo   progress.Repository
	assignmentRepo assignment.Repository
	teamRepo       team.Repository
	idGen          idgen.Generator
	now            func() time.Time
}

func NewProgressService(
	progressRepo progress.Repository,
	assignmentRepo assignment.Repository,
	teamRepo team.Repository,
	idGen idgen.Generator,
) *ProgressService {
	return &ProgressService{
		progressRepo:   progressRepo,
		assignmentRepo: assignmentRepo,
		teamRepo:       teamRepo,
		idGen:          idGen,
		now:            time.Now,
	}
}

// RecordByPlayer writes a self-reported entry. The player must be the
// assignment's individual target or an active member of its target team.
func (s *ProgressService) RecordByPlayer(ctx context.Context, playerID string, input RecordProgressInput) (progress.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressService.RecordByPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return progress.Record{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, err := s.loadActiveAssignment(ctx, input.AssignmentID)
	if err != nil {
		return progress.Record{}, err
	}

	allowed := false
	switch {
	case item.Target.Individual():
		allowed = item.Target.PlayerID == playerID
	case item.Target.Group():
		allowed, err = hasActiveMembership(ctx, s.teamRepo, playerID, item.Target.TeamID)
		if err != nil {
			return progress.Record{}, err
		}
	}
	if !allowed {
		return progress.Record{}, fmt.Errorf("%w: assignment does not cover this player", ErrForbidden)
	}

	return s.create(ctx, progress.PlayerActor(playerID), item.ID, input)
}

// RecordByCoach writes an entry on a player's behalf. The coach must own the
// assignment or manage its target.
func (s *ProgressService) RecordByCoach(ctx context.Context, coachID string, input RecordProgressInput) (progress.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressService.RecordByCoach")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	if coachID == "" {
		return progress.Record{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	item, err := s.loadActiveAssignment(ctx, input.AssignmentID)
	if err != nil {
		return progress.Record{}, err
	}
	if err := s.authorizeCoach(ctx, coachID, item); err != nil {
		return progress.Record{}, err
	}

	return s.create(ctx, progress.CoachActor(coachID), item.ID, input)
}

// Verify marks a record as coach-verified exactly once. Verifying a 100%
// record against an ACTIVE assignment also completes the assignment in the
// same repository transaction.
func (s *ProgressService) Verify(ctx context.Context, input VerifyProgressInput) (progress.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressService.Verify")
	defer span.End()

	input.RecordID = strings.TrimSpace(input.RecordID)
	input.CoachID = strings.TrimSpace(input.CoachID)
	input.Comment = strings.TrimSpace(input.Comment)
	if input.RecordID == "" {
		return progress.Record{}, fmt.Errorf("%w: record id is required", ErrInvalidInput)
	}
	if input.CoachID == "" {
		return progress.Record{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	record, exists, err := s.progressRepo.GetByID(ctx, input.RecordID)
	if err != nil {
		return progress.Record{}, fmt.Errorf("get progress record by id: %w", err)
	}
	if !exists {
		return progress.Record{}, fmt.Errorf("%w: progress record=%s", ErrNotFound, input.RecordID)
	}
	if record.CoachVerified {
		return progress.Record{}, fmt.Errorf("%w: progress record is already verified", ErrInvalidState)
	}

	item, exists, err := s.assignmentRepo.GetByID(ctx, record.AssignmentID)
	if err != nil {
		return progress.Record{}, fmt.Errorf("get assignment by id: %w", err)
	}
	if !exists {
		return progress.Record{}, fmt.Errorf("%w: assignment=%s", ErrNotFound, record.AssignmentID)
	}
	if err := s.authorizeCoach(ctx, input.CoachID, item); err != nil {
		return progress.Record{}, err
	}

	completeAssignment := record.CompletionPercentage == 100 && item.Status == assignment.StatusActive

	now := s.now().UTC()
	if err := s.progressRepo.Verify(ctx, record.ID, input.CoachID, input.Comment, now, completeAssignment); err != nil {
		if errors.Is(err, progress.ErrAlreadyVerified) {
			return progress.Record{}, fmt.Errorf("%w: progress record is already verified", ErrInvalidState)
		}
		if errors.Is(err, assignment.ErrStaleStatus) {
			return progress.Record{}, fmt.Errorf("%w: assignment status changed concurrently", ErrInvalidState)
		}
		return progress.Record{}, fmt.Errorf("verify progress record: %w", err)
	}

	record.CoachVerified = true
	record.VerifiedByCoachID = input.CoachID
	record.VerifiedAt = &now
	record.VerificationComment = input.Comment
	return record, nil
}

func (s *ProgressService) Get(ctx context.Context, recordID string) (progress.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressService.Get")
	defer span.End()

	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return progress.Record{}, fmt.Errorf("%w: progress record id is required", ErrInvalidInput)
	}

	record, exists, err := s.progressRepo.GetByID(ctx, recordID)
	if err != nil {
		return progress.Record{}, fmt.Errorf("get progress record by id: %w", err)
	}
	if !exists {
		return progress.Record{}, fmt.Errorf("%w: progress record=%s", ErrNotFound, recordID)
	}
	return record, nil
}

func (s *ProgressService) ListForAssignment(ctx context.Context, assignmentID string) ([]progress.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "ProgressService.ListForAssignment")
	defer span.End()

	assignmentID = strings.TrimSpace(assignmentID)
	if assignmentID == "" {
		return nil, fmt.Errorf("%w: assignment id is required", ErrInvalidInput)
	}

	items, err := s.progressRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("list progress records by assignment: %w", err)
	}
	return items, nil
}

func (s *ProgressService) create(ctx context.Context, actor progress.Actor, assignmentID string, input RecordProgressInput) (progress.Record, error) {
	recordID, err := s.idGen.NewID()
	if err != nil {
		return progress.Record{}, fmt.Errorf("generate progress record id: %w", err)
	}

	now := s.now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	record := progress.Record{
		ID:                   recordID,
		AssignmentID:         assignmentID,
		RecordedBy:           actor,
		Date:                 date,
		CompletionPercentage: progress.ClampPercentage(input.CompletionPercentage),
		Notes:                strings.TrimSpace(input.Notes),
		CreatedAt:            now,
	}

	if err := s.progressRepo.Create(ctx, record); err != nil {
		return progress.Record{}, fmt.Errorf("create progress record: %w", err)
	}
	return record, nil
}

func (s *ProgressService) loadActiveAssignment(ctx context.Context, assignmentID string) (assignment.Assignment, error) {
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
	if item.Status != assignment.StatusActive {
		return assignment.Assignment{}, fmt.Errorf("%w: progress can only be recorded against an active assignment, assignment is %s", ErrInvalidState, item.Status)
	}
	return item, nil
}

func (s *ProgressService) authorizeCoach(ctx context.Context, coachID string, item assignment.Assignment) error {
	if item.CoachID == coachID {
		return nil
	}
	if item.Target.Group() {
		return requireCoachOfTeam(ctx, s.teamRepo, coachID, item.Target.TeamID)
	}

	memberships, err := s.teamRepo.ListMembershipsByPlayer(ctx, item.Target.PlayerID, false)
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

	return fmt.Errorf("%w: coach=%s does not manage the assignment target", ErrForbidden, coachID)
}
