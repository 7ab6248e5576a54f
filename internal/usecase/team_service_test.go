package usecase

import (
	"errors"
	"testing"

	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/memory"
)

func TestTeamService_ListRoster(t *testing.T) {
	env := newWorkflowEnv(t)

	entries, err := env.teams.ListRoster(t.Context(), memory.TeamIDGarudaU17, false)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 roster entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if !entry.Membership.Active {
			t.Fatalf("inactive membership in roster: %+v", entry.Membership)
		}
		if entry.Player.ID != entry.Membership.PlayerID {
			t.Fatalf("player/membership mismatch: %+v", entry)
		}
	}
}

func TestTeamService_LeaveDeactivatesMembership(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	if err := env.teams.Leave(ctx, memory.PlayerIDEka, memory.TeamIDGarudaU17); err != nil {
		t.Fatalf("leave team: %v", err)
	}

	membership, exists, err := env.teamRepo.GetMembership(ctx, memory.PlayerIDEka, memory.TeamIDGarudaU17)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if !exists || membership.Active || membership.LeftAt == nil {
		t.Fatalf("membership not deactivated: %+v", membership)
	}

	entries, err := env.teams.ListRoster(ctx, memory.TeamIDGarudaU17, false)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 roster entry after leave, got %d", len(entries))
	}

	withHistory, err := env.teams.ListRoster(ctx, memory.TeamIDGarudaU17, true)
	if err != nil {
		t.Fatalf("list roster with history: %v", err)
	}
	if len(withHistory) != 2 {
		t.Fatalf("expected 2 roster entries including inactive, got %d", len(withHistory))
	}

	// leaving twice finds nothing to deactivate.
	if err := env.teams.Leave(ctx, memory.PlayerIDEka, memory.TeamIDGarudaU17); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_LeaveThenRejoinThroughRequest(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	if err := env.teams.Leave(ctx, memory.PlayerIDEka, memory.TeamIDGarudaU17); err != nil {
		t.Fatalf("leave team: %v", err)
	}

	request, err := env.joinRequests.Create(ctx, CreateJoinRequestInput{
		PlayerID: memory.PlayerIDEka,
		TeamID:   memory.TeamIDGarudaU17,
	})
	if err != nil {
		t.Fatalf("create join request after leave: %v", err)
	}
	if _, err := env.joinRequests.Approve(ctx, DecideJoinRequestInput{
		RequestID: request.ID,
		CoachID:   memory.CoachIDBima,
	}); err != nil {
		t.Fatalf("approve rejoin: %v", err)
	}

	membership, exists, err := env.teamRepo.GetMembership(ctx, memory.PlayerIDEka, memory.TeamIDGarudaU17)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if !exists || !membership.Active {
		t.Fatalf("rejoin did not reactivate membership: %+v", membership)
	}
}

func TestTeamService_ReferenceReads(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := t.Context()

	teams, err := env.teams.ListTeams(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(teams))
	}

	clusters, err := env.teams.ListClusters(ctx)
	if err != nil {
		t.Fatalf("list clusters: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}

	coached, err := env.teams.ListTeamsByCoach(ctx, memory.CoachIDBima)
	if err != nil {
		t.Fatalf("list teams by coach: %v", err)
	}
	if len(coached) != 2 {
		t.Fatalf("expected 2 coached teams, got %d", len(coached))
	}

	if _, err := env.teams.GetPlayer(ctx, "player-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.teams.GetCoach(ctx, memory.CoachIDSari); err != nil {
		t.Fatalf("get coach: %v", err)
	}
}
