package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/andrisetiawan/squadhub/internal/domain/progress"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

// CompletionPercentage carries no validate tag on purpose. The service clamps
// out-of-range values into [0, 100] instead of rejecting them.
type recordProgressRequest struct {
	Date                 string `json:"date" validate:"omitempty"`
	CompletionPercentage int    `json:"completion_percentage"`
	Notes                string `json:"notes" validate:"omitempty,max=2000"`
}

type verifyProgressRequest struct {
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

func (h *Handler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordProgress")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req recordProgressRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.RecordProgressInput{
		AssignmentID:         r.PathValue("assignmentID"),
		CompletionPercentage: req.CompletionPercentage,
		Notes:                req.Notes,
	}
	if date != nil {
		input.Date = *date
	}

	var record progress.Record
	switch {
	case principal.IsPlayer():
		record, err = h.progressService.RecordByPlayer(ctx, principal.PlayerID, input)
	case principal.IsCoach():
		record, err = h.progressService.RecordByCoach(ctx, principal.CoachID, input)
	default:
		err = fmt.Errorf("%w: player or coach identity required", usecase.ErrForbidden)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "record progress failed", "assignment_id", input.AssignmentID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, progressRecordToDTO(record))
}

func (h *Handler) ListAssignmentProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAssignmentProgress")
	defer span.End()

	assignmentID := r.PathValue("assignmentID")
	records, err := h.progressService.ListForAssignment(ctx, assignmentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list assignment progress failed", "assignment_id", assignmentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progressRecordsToDTO(records))
}

func (h *Handler) GetProgressRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProgressRecord")
	defer span.End()

	recordID := r.PathValue("recordID")
	record, err := h.progressService.Get(ctx, recordID)
	if err != nil {
		h.logger.WarnContext(ctx, "get progress record failed", "record_id", recordID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progressRecordToDTO(record))
}

func (h *Handler) VerifyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyProgress")
	defer span.End()

	principal, err := coachFromContext(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req verifyProgressRequest
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

	recordID := r.PathValue("recordID")
	record, err := h.progressService.Verify(ctx, usecase.VerifyProgressInput{
		RecordID: recordID,
		CoachID:  principal.CoachID,
		Comment:  req.Comment,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "verify progress failed", "record_id", recordID, "coach_id", principal.CoachID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progressRecordToDTO(record))
}
