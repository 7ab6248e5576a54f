package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andrisetiawan/squadhub/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo club data into an empty database. It is a
// no-op once any cluster row exists, so restarting the API against a live
// database never duplicates reference data.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM clusters WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count clusters for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedClusters() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO clusters (public_id, name, location)
VALUES (:public_id, :name, :location)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": c.ID,
			"name":      c.Name,
			"location":  c.Location,
		})
		if err != nil {
			return fmt.Errorf("bind seed cluster %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed cluster %s: %w", c.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, name, cluster_public_id)
VALUES (:public_id, :name, :cluster_public_id)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":         t.ID,
			"name":              t.Name,
			"cluster_public_id": t.ClusterID,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, c := range memory.SeedCoaches() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO coaches (public_id, name, specialty)
VALUES (:public_id, :name, :specialty)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": c.ID,
			"name":      c.Name,
			"specialty": c.Specialty,
		})
		if err != nil {
			return fmt.Errorf("bind seed coach %s query: %w", c.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed coach %s: %w", c.ID, err)
		}
	}

	for _, a := range memory.SeedCoachAssignments() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO coach_assignments (public_id, coach_public_id, team_public_id, active, assigned_at)
VALUES (:public_id, :coach_public_id, :team_public_id, :active, :assigned_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":       a.ID,
			"coach_public_id": a.CoachID,
			"team_public_id":  a.TeamID,
			"active":          a.Active,
			"assigned_at":     a.AssignedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed coach assignment %s query: %w", a.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed coach assignment %s: %w", a.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, name, position, birth_date)
VALUES (:public_id, :name, :position, :birth_date)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":  p.ID,
			"name":       p.Name,
			"position":   string(p.Position),
			"birth_date": p.BirthDate,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	for _, m := range memory.SeedMemberships() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO team_memberships (public_id, player_public_id, team_public_id, active, joined_at)
VALUES (:public_id, :player_public_id, :team_public_id, :active, :joined_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":        m.ID,
			"player_public_id": m.PlayerID,
			"team_public_id":   m.TeamID,
			"active":           m.Active,
			"joined_at":        m.JoinedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed membership %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed membership %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
