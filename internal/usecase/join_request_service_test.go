package usecase

import (
	"errors"
	"testing"

	"github.com/andrisetiawan/squadhub/internal/domain/joinrequest"
	"github.com/andrisetiawan/squadhub/internal/domain/user"
	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/memory"
)

func TestJoinRequestService_ApproveCreatesMembership(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}
	if request.Status != joinrequest.StatusPending {
		t.Fatalf("unexpected status: %s", request.Status)
	}

	approved, err := env.joinRequests.Approve(ctx, DecideJoinRequestInput{
		RequestID: request.ID,
		CoachID:   memory.CoachIDBima,
		Comment:   "welcome aboard",
	})
	if err != nil {
		t.Fatalf("approve join request: %v", err)
	}
	if approved.Status != joinrequest.StatusApproved {
		t.Fatalf("unexpected status: %s", approved.Status)
	}
	if approved.ReviewedAt == nil {
		t.Fatal("reviewed at not set")
	}

	membership, exists, err := env.teamRepo.GetMembership(ctx, memory.PlayerIDRafi, memory.TeamIDGarudaU17)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if !exists || !membership.Active {
		t.Fatal("membership was not created by approval")
	}
}

func TestJoinRequestService_ApprovePersistsReviewComment(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}

	if _, err := env.joinRequests.Approve(ctx, DecideJoinRequestInput{
		RequestID: request.ID,
		CoachID:   memory.CoachIDBima,
		Comment:   "welcome aboard",
	}); err != nil {
		t.Fatalf("approve join request: %v", err)
	}

	// read back through the repository so the assertion covers what was
	// stored, not what the approve call returned.
	stored, exists, err := env.requestRepo.GetByID(ctx, request.ID)
	if err != nil {
		t.Fatalf("get join request: %v", err)
	}
	if !exists {
		t.Fatal("join request missing after approval")
	}
	if stored.ReviewComment != "welcome aboard" {
		t.Fatalf("review comment not persisted, got %q", stored.ReviewComment)
	}
}

func TestJoinRequestService_RejectFreesSlotForNewRequest(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}

	rejected, err := env.joinRequests.Reject(ctx, DecideJoinRequestInput{
		RequestID: request.ID,
		CoachID:   memory.CoachIDBima,
		Comment:   "roster is full this season",
	})
	if err != nil {
		t.Fatalf("reject join request: %v", err)
	}
	if rejected.Status != joinrequest.StatusRejected {
		t.Fatalf("unexpected status: %s", rejected.Status)
	}

	// a rejected request frees the uniqueness slot just like a cancelled one.
	fresh, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request after reject: %v", err)
	}
	if fresh.Status != joinrequest.StatusPending {
		t.Fatalf("unexpected status: %s", fresh.Status)
	}
	if fresh.ID == request.ID {
		t.Fatal("expected a new request, got the rejected one")
	}
}

func TestJoinRequestService_DuplicatePendingIsConflict(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	if _, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	}); err != nil {
		t.Fatalf("create join request: %v", err)
	}

	_, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestJoinRequestService_CreateForActiveMemberIsConflict(t *testing.T) {
	env := newWorkflowEnv(t)

	_, err := env.joinRequests.Create(t.Context(), CreateJoinRequestInput{
		PlayerID: memory.PlayerIDEka,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestJoinRequestService_DecideTwiceIsInvalidState(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}

	decide := DecideJoinRequestInput{RequestID: request.ID, CoachID: memory.CoachIDBima}
	if _, err := env.joinRequests.Approve(ctx, decide); err != nil {
		t.Fatalf("approve join request: %v", err)
	}
	if _, err := env.joinRequests.Reject(ctx, decide); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestJoinRequestService_ForeignCoachIsForbidden(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}

	_, err = env.joinRequests.Approve(ctx, DecideJoinRequestInput{
		RequestID: request.ID,
		CoachID:   memory.CoachIDSari,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJoinRequestService_CancelOwnPendingRequest(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}

	if _, err := env.joinRequests.Cancel(ctx, memory.PlayerIDBayu, request.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign player, got %v", err)
	}

	cancelled, err := env.joinRequests.Cancel(ctx, memory.PlayerIDRafi, request.ID)
	if err != nil {
		t.Fatalf("cancel join request: %v", err)
	}
	if cancelled.Status != joinrequest.StatusCancelled {
		t.Fatalf("unexpected status: %s", cancelled.Status)
	}

	// a cancelled request frees the uniqueness slot for a fresh one.
	if _, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	}); err != nil {
		t.Fatalf("create join request after cancel: %v", err)
	}
}

func TestJoinRequestService_GetVisibility(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}

	owner := user.Principal{UserID: "u-rafi", Role: user.RolePlayer, PlayerID: memory.PlayerIDRafi}
	if _, err := env.joinRequests.Get(ctx, owner, request.ID); err != nil {
		t.Fatalf("get as owner: %v", err)
	}

	teamCoach := user.Principal{UserID: "u-bima", Role: user.RoleCoach, CoachID: memory.CoachIDBima}
	if _, err := env.joinRequests.Get(ctx, teamCoach, request.ID); err != nil {
		t.Fatalf("get as team coach: %v", err)
	}

	otherCoach := user.Principal{UserID: "u-sari", Role: user.RoleCoach, CoachID: memory.CoachIDSari}
	if _, err := env.joinRequests.Get(ctx, otherCoach, request.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJoinRequestService_ListForTeamRequiresCoach(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	if _, err := env.joinRequests.ListForTeam(ctx, memory.CoachIDSari, memory.TeamIDGarudaU17, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDRafi,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request: %v", err)
	}

	items, err := env.joinRequests.ListForTeam(ctx, memory.CoachIDBima, memory.TeamIDGarudaU17, joinrequest.StatusPending)
	if err != nil {
		t.Fatalf("list for team: %v", err)
	}
	if len(items) != 1 || items[0].ID != request.ID {
		t.Fatalf("unexpected items: %+v", items)
	}
}
