package postgres

import (
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/team"
)

type teamTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	ClusterID string     `db:"cluster_public_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type membershipTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	PlayerID  string     `db:"player_public_id"`
	TeamID    string     `db:"team_public_id"`
	Active    bool       `db:"active"`
	JoinedAt  time.Time  `db:"joined_at"`
	LeftAt    *time.Time `db:"left_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

type membershipInsertModel struct {
	PublicID string    `db:"public_id"`
	PlayerID string    `db:"player_public_id"`
	TeamID   string    `db:"team_public_id"`
	Active   bool      `db:"active"`
	JoinedAt time.Time `db:"joined_at"`
}

type coachAssignmentTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	CoachID    string    `db:"coach_public_id"`
	TeamID     string    `db:"team_public_id"`
	Active     bool      `db:"active"`
	AssignedAt time.Time `db:"assigned_at"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:        row.PublicID,
		Name:      row.Name,
		ClusterID: row.ClusterID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func membershipFromRow(row membershipTableModel) team.Membership {
	return team.Membership{
		ID:        row.PublicID,
		PlayerID:  row.PlayerID,
		TeamID:    row.TeamID,
		Active:    row.Active,
		JoinedAt:  row.JoinedAt,
		LeftAt:    row.LeftAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
