package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/andrisetiawan/squadhub/internal/domain/recommendation"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

type bulkAssignTeamTrainingRequest struct {
	Kind          string `json:"kind" validate:"required"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,gt=0"`
	FocusArea     string `json:"focus_area" validate:"omitempty,max=100"`
	StartDate     string `json:"start_date" validate:"omitempty"`
	EndDate       string `json:"end_date" validate:"omitempty"`
}

func (h *Handler) BulkAssignTeamTraining(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BulkAssignTeamTraining")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req bulkAssignTeamTrainingRequest
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

	startDate, err := parseOptionalDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	result, err := h.orchestrator.AssignPlanToTeam(ctx, usecase.AssignPlanToTeamInput{
		CoachID:       principal.CoachID,
		TeamID:        teamID,
		Kind:          kind,
		Difficulty:    req.Difficulty,
		DurationWeeks: req.DurationWeeks,
		FocusArea:     req.FocusArea,
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "bulk assign team training failed", "team_id", teamID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, bulkAssignResultToDTO(result))
}

func (h *Handler) GetTeamTrainingOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamTrainingOverview")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	overview, err := h.orchestrator.Overview(ctx, principal.CoachID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team training overview failed", "team_id", teamID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamTrainingOverviewToDTO(overview))
}
