package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/recommendation"
	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	idgen "github.com/andrisetiawan/squadhub/internal/platform/id"
)

type CreateTrainingPlanInput struct {
	CoachID       string
	Title         string
	Description   string
	Difficulty    string
	DurationWeeks int
	FocusArea     string
	ClusterID     string
	// AsDraft keeps the plan editable before it enters the approval queue.
	AsDraft bool
}

type CreatePlanFromRecommendationInput struct {
	CoachID       string
	Payload       recommendation.Payload
	SubjectName   string
	Difficulty    string
	DurationWeeks int
	FocusArea     string
	ClusterID     string
	AsDraft       bool
}

type DecideTrainingPlanInput struct {
	PlanID  string
	CoachID string
	Comment string
}

// TrainingPlanService drives the plan approval lifecycle. Plans are created
// manually or seeded from a recommendation payload; either way they pass
// through the same approval queue before they can be assigned.
type TrainingPlanService struct {
	planRepo trainingplan.Repository
	idGen    idgen.Generator
	now      func() time.Time
}

func NewTrainingPlanService(planRepo trainingplan.Repository, idGen idgen.Generator) *TrainingPlanService {
	return &TrainingPlanService{
		planRepo: planRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *TrainingPlanService) CreateManual(ctx context.Context, input CreateTrainingPlanInput) (trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.CreateManual")
	defer span.End()

	input.CoachID = strings.TrimSpace(input.CoachID)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.CoachID == "" {
		return trainingplan.Plan{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	if input.Title == "" {
		return trainingplan.Plan{}, fmt.Errorf("%w: plan title is required", ErrInvalidInput)
	}

	return s.create(ctx, input, false)
}

// CreateFromRecommendation maps a recommendation payload into plan content
// through the fixed per-kind template and creates the plan as AI-generated.
func (s *TrainingPlanService) CreateFromRecommendation(ctx context.Context, input CreatePlanFromRecommendationInput) (trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.CreateFromRecommendation")
	defer span.End()

	input.CoachID = strings.TrimSpace(input.CoachID)
	if input.CoachID == "" {
		return trainingplan.Plan{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	title, description, err := recommendation.PlanContent(input.Payload, input.SubjectName)
	if err != nil {
		return trainingplan.Plan{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.create(ctx, CreateTrainingPlanInput{
		CoachID:       input.CoachID,
		Title:         title,
		Description:   description,
		Difficulty:    input.Difficulty,
		DurationWeeks: input.DurationWeeks,
		FocusArea:     input.FocusArea,
		ClusterID:     input.ClusterID,
		AsDraft:       input.AsDraft,
	}, true)
}

func (s *TrainingPlanService) create(ctx context.Context, input CreateTrainingPlanInput, generatedByAI bool) (trainingplan.Plan, error) {
	input.Difficulty = strings.TrimSpace(input.Difficulty)
	input.FocusArea = strings.TrimSpace(input.FocusArea)
	input.ClusterID = strings.TrimSpace(input.ClusterID)
	if input.DurationWeeks <= 0 {
		return trainingplan.Plan{}, fmt.Errorf("%w: duration weeks must be positive", ErrInvalidInput)
	}

	planID, err := s.idGen.NewID()
	if err != nil {
		return trainingplan.Plan{}, fmt.Errorf("generate training plan id: %w", err)
	}

	status := trainingplan.StatusPendingApproval
	if input.AsDraft {
		status = trainingplan.StatusDraft
	}

	now := s.now().UTC()
	plan := trainingplan.Plan{
		ID:            planID,
		Title:         input.Title,
		Description:   input.Description,
		CoachID:       input.CoachID,
		GeneratedByAI: generatedByAI,
		Difficulty:    input.Difficulty,
		DurationWeeks: input.DurationWeeks,
		FocusArea:     input.FocusArea,
		ClusterID:     input.ClusterID,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return trainingplan.Plan{}, fmt.Errorf("create training plan: %w", err)
	}
	return plan, nil
}

// SubmitForApproval moves the owning coach's draft into the approval queue.
func (s *TrainingPlanService) SubmitForApproval(ctx context.Context, coachID, planID string) (trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.SubmitForApproval")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	plan, err := s.load(ctx, planID)
	if err != nil {
		return trainingplan.Plan{}, err
	}
	if coachID == "" {
		return trainingplan.Plan{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	if plan.CoachID != coachID {
		return trainingplan.Plan{}, fmt.Errorf("%w: plan belongs to another coach", ErrForbidden)
	}

	return s.moveStatus(ctx, plan, trainingplan.StatusPendingApproval, "")
}

func (s *TrainingPlanService) Approve(ctx context.Context, input DecideTrainingPlanInput) (trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.Approve")
	defer span.End()

	return s.decide(ctx, input, trainingplan.StatusApproved)
}

func (s *TrainingPlanService) Reject(ctx context.Context, input DecideTrainingPlanInput) (trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.Reject")
	defer span.End()

	return s.decide(ctx, input, trainingplan.StatusRejected)
}

// Archive retires an approved plan. Only the owning coach may archive a plan
// it authored; ownerless AI plans may be archived by any coach.
func (s *TrainingPlanService) Archive(ctx context.Context, coachID, planID string) (trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.Archive")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	if coachID == "" {
		return trainingplan.Plan{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}
	plan, err := s.load(ctx, planID)
	if err != nil {
		return trainingplan.Plan{}, err
	}
	if plan.CoachID != "" && plan.CoachID != coachID {
		return trainingplan.Plan{}, fmt.Errorf("%w: plan belongs to another coach", ErrForbidden)
	}

	return s.moveStatus(ctx, plan, trainingplan.StatusArchived, "")
}

func (s *TrainingPlanService) Get(ctx context.Context, planID string) (trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.Get")
	defer span.End()

	return s.load(ctx, planID)
}

// List returns plans, optionally filtered by status. Empty status means all.
func (s *TrainingPlanService) List(ctx context.Context, status trainingplan.Status) ([]trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.List")
	defer span.End()

	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown training plan status %q", ErrInvalidInput, status)
	}

	items, err := s.planRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list training plans: %w", err)
	}
	return items, nil
}

func (s *TrainingPlanService) ListByCoach(ctx context.Context, coachID string) ([]trainingplan.Plan, error) {
	ctx, span := startUsecaseSpan(ctx, "TrainingPlanService.ListByCoach")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	if coachID == "" {
		return nil, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	items, err := s.planRepo.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("list training plans by coach: %w", err)
	}
	return items, nil
}

func (s *TrainingPlanService) decide(ctx context.Context, input DecideTrainingPlanInput, to trainingplan.Status) (trainingplan.Plan, error) {
	input.CoachID = strings.TrimSpace(input.CoachID)
	input.Comment = strings.TrimSpace(input.Comment)
	if input.CoachID == "" {
		return trainingplan.Plan{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	plan, err := s.load(ctx, input.PlanID)
	if err != nil {
		return trainingplan.Plan{}, err
	}

	return s.moveStatus(ctx, plan, to, input.Comment)
}

func (s *TrainingPlanService) load(ctx context.Context, planID string) (trainingplan.Plan, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return trainingplan.Plan{}, fmt.Errorf("%w: plan id is required", ErrInvalidInput)
	}

	plan, exists, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return trainingplan.Plan{}, fmt.Errorf("get training plan by id: %w", err)
	}
	if !exists {
		return trainingplan.Plan{}, fmt.Errorf("%w: training plan=%s", ErrNotFound, planID)
	}
	return plan, nil
}

func (s *TrainingPlanService) moveStatus(ctx context.Context, plan trainingplan.Plan, to trainingplan.Status, comment string) (trainingplan.Plan, error) {
	if _, err := trainingplan.Transition(plan.Status, to); err != nil {
		return trainingplan.Plan{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	now := s.now().UTC()
	if err := s.planRepo.UpdateStatus(ctx, plan.ID, plan.Status, to, comment, now); err != nil {
		if errors.Is(err, trainingplan.ErrStaleStatus) {
			return trainingplan.Plan{}, fmt.Errorf("%w: training plan status changed concurrently", ErrInvalidState)
		}
		return trainingplan.Plan{}, fmt.Errorf("update training plan status: %w", err)
	}

	plan.Status = to
	plan.ApprovalComment = comment
	plan.UpdatedAt = now
	switch to {
	case trainingplan.StatusApproved:
		plan.ApprovedAt = &now
	case trainingplan.StatusRejected:
		plan.RejectedAt = &now
	}
	return plan, nil
}
