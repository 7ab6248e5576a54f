package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/andrisetiawan/squadhub/internal/domain/recommendation"
	"github.com/andrisetiawan/squadhub/internal/domain/trainingplan"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

type createTrainingPlanRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,gt=0"`
	FocusArea     string `json:"focus_area" validate:"omitempty,max=100"`
	ClusterID     string `json:"cluster_id" validate:"omitempty"`
	AsDraft       bool   `json:"as_draft"`
}

type decideTrainingPlanRequest struct {
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

type createPlanFromRecommendationRequest struct {
	Kind          string `json:"kind" validate:"required"`
	Summary       string `json:"summary" validate:"omitempty,max=4000"`
	Physical      string `json:"physical" validate:"omitempty,max=4000"`
	Technical     string `json:"technical" validate:"omitempty,max=4000"`
	Tactical      string `json:"tactical" validate:"omitempty,max=4000"`
	Mental        string `json:"mental" validate:"omitempty,max=4000"`
	Analysis      string `json:"analysis" validate:"omitempty,max=4000"`
	PlayerID      string `json:"player_id" validate:"omitempty"`
	TeamID        string `json:"team_id" validate:"omitempty"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,gt=0"`
	FocusArea     string `json:"focus_area" validate:"omitempty,max=100"`
	ClusterID     string `json:"cluster_id" validate:"omitempty"`
	AsDraft       bool   `json:"as_draft"`
}

func (h *Handler) CreateTrainingPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTrainingPlan")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTrainingPlanRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	plan, err := h.planService.CreateManual(ctx, usecase.CreateTrainingPlanInput{
		CoachID:       principal.CoachID,
		Title:         req.Title,
		Description:   req.Description,
		Difficulty:    req.Difficulty,
		DurationWeeks: req.DurationWeeks,
		FocusArea:     req.FocusArea,
		ClusterID:     req.ClusterID,
		AsDraft:       req.AsDraft,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create training plan failed", "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, trainingPlanToDTO(plan))
}

// CreatePlanFromRecommendation accepts a recommendation payload directly so a
// coach can turn an externally produced recommendation into a plan for a
// single player or a team without going through the bulk assignment flow.
func (h *Handler) CreatePlanFromRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlanFromRecommendation")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createPlanFromRecommendationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kind, err := recommendation.ParseKind(req.Kind)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	if (req.PlayerID == "") == (req.TeamID == "") {
		writeError(ctx, w, fmt.Errorf("%w: exactly one of player_id or team_id is required", usecase.ErrInvalidInput))
		return
	}

	var subjectName string
	if req.PlayerID != "" {
		subject, err := h.teamService.GetPlayer(ctx, req.PlayerID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		subjectName = subject.Name
	} else {
		subject, err := h.teamService.GetTeam(ctx, req.TeamID)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		subjectName = subject.Name
	}

	plan, err := h.planService.CreateFromRecommendation(ctx, usecase.CreatePlanFromRecommendationInput{
		CoachID: principal.CoachID,
		Payload: recommendation.Payload{
			Kind:      kind,
			Summary:   req.Summary,
			Physical:  req.Physical,
			Technical: req.Technical,
			Tactical:  req.Tactical,
			Mental:    req.Mental,
			Analysis:  req.Analysis,
		},
		SubjectName:   subjectName,
		Difficulty:    req.Difficulty,
		DurationWeeks: req.DurationWeeks,
		FocusArea:     req.FocusArea,
		ClusterID:     req.ClusterID,
		AsDraft:       req.AsDraft,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create plan from recommendation failed", "coach_id", principal.CoachID, "kind", string(kind), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, trainingPlanToDTO(plan))
}

func (h *Handler) ListTrainingPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTrainingPlans")
	defer span.End()

	status := trainingplan.Status(r.URL.Query().Get("status"))
	plans, err := h.planService.List(ctx, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list training plans failed", "status", string(status), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]trainingPlanDTO, 0, len(plans))
	for _, plan := range plans {
		items = append(items, trainingPlanToDTO(plan))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTrainingPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTrainingPlan")
	defer span.End()

	planID := r.PathValue("planID")
	plan, err := h.planService.Get(ctx, planID)
	if err != nil {
		h.logger.WarnContext(ctx, "get training plan failed", "plan_id", planID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trainingPlanToDTO(plan))
}

func (h *Handler) SubmitTrainingPlan(w http.ResponseWriter, r *http.Request) {
	h.transitionTrainingPlan(w, r, "httpapi.Handler.SubmitTrainingPlan", h.planService.SubmitForApproval)
}

func (h *Handler) ArchiveTrainingPlan(w http.ResponseWriter, r *http.Request) {
	h.transitionTrainingPlan(w, r, "httpapi.Handler.ArchiveTrainingPlan", h.planService.Archive)
}

func (h *Handler) transitionTrainingPlan(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	transition func(ctx context.Context, coachID, planID string) (trainingplan.Plan, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	planID := r.PathValue("planID")
	plan, err := transition(ctx, principal.CoachID, planID)
	if err != nil {
		h.logger.WarnContext(ctx, "training plan transition failed", "plan_id", planID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trainingPlanToDTO(plan))
}

func (h *Handler) ApproveTrainingPlan(w http.ResponseWriter, r *http.Request) {
	h.decideTrainingPlan(w, r, "httpapi.Handler.ApproveTrainingPlan", h.planService.Approve)
}

func (h *Handler) RejectTrainingPlan(w http.ResponseWriter, r *http.Request) {
	h.decideTrainingPlan(w, r, "httpapi.Handler.RejectTrainingPlan", h.planService.Reject)
}

func (h *Handler) decideTrainingPlan(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	decide func(ctx context.Context, input usecase.DecideTrainingPlanInput) (trainingplan.Plan, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req decideTrainingPlanRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	planID := r.PathValue("planID")
	plan, err := decide(ctx, usecase.DecideTrainingPlanInput{
		PlanID:  planID,
		CoachID: principal.CoachID,
		Comment: req.Comment,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "decide training plan failed", "plan_id", planID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trainingPlanToDTO(plan))
}

func (h *Handler) ListMyTrainingPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTrainingPlans")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	plans, err := h.planService.ListByCoach(ctx, principal.CoachID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my training plans failed", "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]trainingPlanDTO, 0, len(plans))
	for _, plan := range plans {
		items = append(items, trainingPlanToDTO(plan))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
