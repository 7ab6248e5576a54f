package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

type createAssignmentRequest struct {
	PlanID    string `json:"plan_id" validate:"required"`
	PlayerID  string `json:"player_id" validate:"omitempty"`
	TeamID    string `json:"team_id" validate:"omitempty"`
	StartDate string `json:"start_date" validate:"omitempty"`
	EndDate   string `json:"end_date" validate:"omitempty"`
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateAssignment")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createAssignmentRequest
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

	item, err := h.assignmentService.Create(ctx, usecase.CreateAssignmentInput{
		CoachID:   principal.CoachID,
		PlanID:    req.PlanID,
		PlayerID:  req.PlayerID,
		TeamID:    req.TeamID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create assignment failed", "coach_id", principal.CoachID, "plan_id", req.PlanID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, assignmentToDTO(item))
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAssignment")
	defer span.End()

	assignmentID := r.PathValue("assignmentID")
	item, err := h.assignmentService.Get(ctx, assignmentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get assignment failed", "assignment_id", assignmentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentToDTO(item))
}

func (h *Handler) ActivateAssignment(w http.ResponseWriter, r *http.Request) {
	h.transitionAssignment(w, r, "httpapi.Handler.ActivateAssignment", h.assignmentService.Activate)
}

func (h *Handler) CancelAssignment(w http.ResponseWriter, r *http.Request) {
	h.transitionAssignment(w, r, "httpapi.Handler.CancelAssignment", h.assignmentService.Cancel)
}

func (h *Handler) transitionAssignment(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	transition func(ctx context.Context, coachID, assignmentID string) (assignment.Assignment, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	assignmentID := r.PathValue("assignmentID")
	item, err := transition(ctx, principal.CoachID, assignmentID)
	if err != nil {
		h.logger.WarnContext(ctx, "assignment transition failed", "assignment_id", assignmentID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentToDTO(item))
}

func (h *Handler) ListMyAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyAssignments")
	defer span.End()

	principal, err := playerFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.assignmentService.ListForPlayer(ctx, principal.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my assignments failed", "player_id", principal.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentsToDTO(items))
}

func (h *Handler) ListTeamAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamAssignments")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	items, err := h.assignmentService.ListForTeam(ctx, principal.CoachID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team assignments failed", "team_id", teamID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentsToDTO(items))
}

func (h *Handler) ListPlanAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlanAssignments")
	defer span.End()

	planID := r.PathValue("planID")
	items, err := h.assignmentService.ListForPlan(ctx, planID)
	if err != nil {
		h.logger.WarnContext(ctx, "list plan assignments failed", "plan_id", planID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentsToDTO(items))
}

// parseOptionalDate accepts either a bare date or a full RFC 3339 timestamp.
func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC 3339", usecase.ErrInvalidInput, field)
	}
	return &parsed, nil
}
