package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/andrisetiawan/squadhub/internal/domain/user"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

type Handler struct {
	joinRequestService *usecase.JoinRequestService
	planService        *usecase.TrainingPlanService
	assignmentService  *usecase.AssignmentService
	progressService    *usecase.ProgressService
	teamService        *usecase.TeamService
	orchestrator       *usecase.TrainingOrchestrator
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	joinRequestService *usecase.JoinRequestService,
	planService *usecase.TrainingPlanService,
	assignmentService *usecase.AssignmentService,
	progressService *usecase.ProgressService,
	teamService *usecase.TeamService,
	orchestrator *usecase.TrainingOrchestrator,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		joinRequestService: joinRequestService,
		planService:        planService,
		assignmentService:  assignmentService,
		progressService:    progressService,
		teamService:        teamService,
		orchestrator:       orchestrator,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// coachFromContext resolves the request principal to a coach identity. Every
// coach-only endpoint goes through here so the 401/403 split stays uniform.
func coachFromContext(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	if !principal.IsCoach() {
		return user.Principal{}, fmt.Errorf("%w: coach identity required", usecase.ErrForbidden)
	}
	return principal, nil
}

func playerFromContext(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	if !principal.IsPlayer() {
		return user.Principal{}, fmt.Errorf("%w: player identity required", usecase.ErrForbidden)
	}
	return principal, nil
}
