package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/andrisetiawan/squadhub/internal/domain/joinrequest"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

type createJoinRequestRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type decideJoinRequestRequest struct {
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

func (h *Handler) CreateJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateJoinRequest")
	defer span.End()

	principal, err := playerFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createJoinRequestRequest
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

	request, err := h.joinRequestService.Create(ctx, usecase.CreateJoinRequestInput{
		PlayerID: principal.PlayerID,
		TeamID:   req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create join request failed", "player_id", principal.PlayerID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, joinRequestToDTO(request))
}

func (h *Handler) GetJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetJoinRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	requestID := r.PathValue("requestID")
	request, err := h.joinRequestService.Get(ctx, principal, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get join request failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinRequestToDTO(request))
}

func (h *Handler) ApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	h.decideJoinRequest(w, r, "httpapi.Handler.ApproveJoinRequest", h.joinRequestService.Approve)
}

func (h *Handler) RejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	h.decideJoinRequest(w, r, "httpapi.Handler.RejectJoinRequest", h.joinRequestService.Reject)
}

func (h *Handler) decideJoinRequest(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	decide func(ctx context.Context, input usecase.DecideJoinRequestInput) (joinrequest.JoinRequest, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req decideJoinRequestRequest
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

	requestID := r.PathValue("requestID")
	request, err := decide(ctx, usecase.DecideJoinRequestInput{
		RequestID: requestID,
		CoachID:   principal.CoachID,
		Comment:   req.Comment,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "decide join request failed", "request_id", requestID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinRequestToDTO(request))
}

func (h *Handler) CancelJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelJoinRequest")
	defer span.End()

	principal, err := playerFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	requestID := r.PathValue("requestID")
	request, err := h.joinRequestService.Cancel(ctx, principal.PlayerID, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel join request failed", "request_id", requestID, "player_id", principal.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinRequestToDTO(request))
}

func (h *Handler) ListMyJoinRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyJoinRequests")
	defer span.End()

	principal, err := playerFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	requests, err := h.joinRequestService.ListForPlayer(ctx, principal.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my join requests failed", "player_id", principal.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]joinRequestDTO, 0, len(requests))
	for _, request := range requests {
		items = append(items, joinRequestToDTO(request))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamJoinRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamJoinRequests")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	status := joinrequest.Status(r.URL.Query().Get("status"))
	requests, err := h.joinRequestService.ListForTeam(ctx, principal.CoachID, teamID, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list team join requests failed", "team_id", teamID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]joinRequestDTO, 0, len(requests))
	for _, request := range requests {
		items = append(items, joinRequestToDTO(request))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
