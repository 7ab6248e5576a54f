package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/cluster"
	"github.com/andrisetiawan/squadhub/internal/domain/coach"
	"github.com/andrisetiawan/squadhub/internal/domain/player"
	"github.com/andrisetiawan/squadhub/internal/domain/team"
)

// RosterEntry pairs a membership with its player profile.
type RosterEntry struct {
	Membership team.Membership
	Player     player.Player
}

// TeamService serves reference data reads and the leave-team flow. Joining a
// team always goes through the join request workflow; leaving is direct.
type TeamService struct {
	teamRepo    team.Repository
	playerRepo  player.Repository
	coachRepo   coach.Repository
	clusterRepo cluster.Repository
	now         func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	coachRepo coach.Repository,
	clusterRepo cluster.Repository,
) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		coachRepo:   coachRepo,
		clusterRepo: clusterRepo,
		now:         time.Now,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

// ListRoster returns the team's memberships joined with player records.
// Only active memberships are included unless includeInactive is set, which
// also returns historical rows with their LeftAt timestamps. Memberships
// whose player row is missing are skipped.
func (s *TeamService) ListRoster(ctx context.Context, teamID string, includeInactive bool) ([]RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListRoster")
	defer span.End()

	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}

	memberships, err := s.teamRepo.ListMembershipsByTeam(ctx, strings.TrimSpace(teamID), includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list memberships by team: %w", err)
	}

	entries := make([]RosterEntry, 0, len(memberships))
	for _, membership := range memberships {
		playerItem, exists, err := s.playerRepo.GetByID(ctx, membership.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("get player by id: %w", err)
		}
		if !exists {
			continue
		}
		entries = append(entries, RosterEntry{
			Membership: membership,
			Player:     playerItem,
		})
	}
	return entries, nil
}

func (s *TeamService) ListTeamsByCoach(ctx context.Context, coachID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListTeamsByCoach")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	if coachID == "" {
		return nil, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	items, err := s.teamRepo.ListTeamsByCoach(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("list teams by coach: %w", err)
	}
	return items, nil
}

// Leave deactivates the player's active membership. Rejoining requires a new
// approved join request.
func (s *TeamService) Leave(ctx context.Context, playerID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Leave")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	teamID = strings.TrimSpace(teamID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	active, err := hasActiveMembership(ctx, s.teamRepo, playerID, teamID)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("%w: player has no active membership in this team", ErrNotFound)
	}

	if err := s.teamRepo.DeactivateMembership(ctx, playerID, teamID, s.now().UTC()); err != nil {
		if isNotFoundText(err) || errors.Is(err, team.ErrMembershipNotFound) {
			return fmt.Errorf("%w: player has no active membership in this team", ErrNotFound)
		}
		return fmt.Errorf("deactivate membership: %w", err)
	}
	return nil
}

func (s *TeamService) ListClusters(ctx context.Context) ([]cluster.Cluster, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListClusters")
	defer span.End()

	items, err := s.clusterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}
	return items, nil
}

func (s *TeamService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListPlayers")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *TeamService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *TeamService) ListCoaches(ctx context.Context) ([]coach.Coach, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListCoaches")
	defer span.End()

	items, err := s.coachRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	return items, nil
}

func (s *TeamService) GetCoach(ctx context.Context, coachID string) (coach.Coach, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetCoach")
	defer span.End()

	coachID = strings.TrimSpace(coachID)
	if coachID == "" {
		return coach.Coach{}, fmt.Errorf("%w: coach id is required", ErrInvalidInput)
	}

	item, exists, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		return coach.Coach{}, fmt.Errorf("get coach by id: %w", err)
	}
	if !exists {
		return coach.Coach{}, fmt.Errorf("%w: coach=%s", ErrNotFound, coachID)
	}
	return item, nil
}
