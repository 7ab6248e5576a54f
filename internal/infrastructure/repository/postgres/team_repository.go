package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/andrisetiawan/squadhub/internal/domain/team"
	qb "github.com/andrisetiawan/squadhub/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) GetMembership(ctx context.Context, playerID, teamID string) (team.Membership, bool, error) {
	query, args, err := qb.Select("*").From("team_memberships").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("team_public_id", teamID),
		).
		OrderBy("active DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Membership{}, false, nil
		}
		return team.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}
	return membershipFromRow(row), true, nil
}

func (r *TeamRepository) ListMembershipsByTeam(ctx context.Context, teamID string, includeInactive bool) ([]team.Membership, error) {
	conditions := []qb.Condition{qb.Eq("team_public_id", teamID)}
	if !includeInactive {
		conditions = append(conditions, qb.Eq("active", true))
	}

	query, args, err := qb.Select("*").From("team_memberships").
		Where(conditions...).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships by team query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships by team: %w", err)
	}

	out := make([]team.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) ListMembershipsByPlayer(ctx context.Context, playerID string, includeInactive bool) ([]team.Membership, error) {
	conditions := []qb.Condition{qb.Eq("player_public_id", playerID)}
	if !includeInactive {
		conditions = append(conditions, qb.Eq("active", true))
	}

	query, args, err := qb.Select("*").From("team_memberships").
		Where(conditions...).
		OrderBy("joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships by player query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships by player: %w", err)
	}

	out := make([]team.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) DeactivateMembership(ctx context.Context, playerID, teamID string, leftAt time.Time) error {
	query, args, err := qb.Update("team_memberships").
		Set("active", false).
		Set("left_at", leftAt).
		Set("updated_at", leftAt).
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("team_public_id", teamID),
			qb.Eq("active", true),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate membership query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deactivate membership: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected deactivate membership: %w", err)
	}
	if affected == 0 {
		return team.ErrMembershipNotFound
	}
	return nil
}

func (r *TeamRepository) IsCoachOfTeam(ctx context.Context, coachID, teamID string) (bool, error) {
	query, args, err := qb.Select("1").From("coach_assignments").
		Where(
			qb.Eq("coach_public_id", coachID),
			qb.Eq("team_public_id", teamID),
			qb.Eq("active", true),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build is coach of team query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("is coach of team: %w", err)
	}
	return true, nil
}

func (r *TeamRepository) ListTeamsByCoach(ctx context.Context, coachID string) ([]team.Team, error) {
	query, args, err := qb.Select("t.*").
		From("teams t JOIN coach_assignments ca ON ca.team_public_id = t.public_id").
		Where(
			qb.Eq("ca.coach_public_id", coachID),
			qb.Eq("ca.active", true),
			qb.IsNull("t.deleted_at"),
		).
		OrderBy("t.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by coach query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by coach: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}
