package postgres

import (
	"database/sql"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/assignment"
)

type assignmentTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	PlanID      string         `db:"plan_public_id"`
	PlayerID    sql.NullString `db:"player_public_id"`
	TeamID      sql.NullString `db:"team_public_id"`
	CoachID     string         `db:"coach_public_id"`
	Status      string         `db:"status"`
	StartDate   *time.Time     `db:"start_date"`
	EndDate     *time.Time     `db:"end_date"`
	ApprovedAt  *time.Time     `db:"approved_at"`
	CancelledAt *time.Time     `db:"cancelled_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type assignmentInsertModel struct {
	PublicID  string         `db:"public_id"`
	PlanID    string         `db:"plan_public_id"`
	PlayerID  sql.NullString `db:"player_public_id"`
	TeamID    sql.NullString `db:"team_public_id"`
	CoachID   string         `db:"coach_public_id"`
	Status    string         `db:"status"`
	StartDate *time.Time     `db:"start_date"`
	EndDate   *time.Time     `db:"end_date"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func assignmentFromRow(row assignmentTableModel) assignment.Assignment {
	return assignment.Assignment{
		ID:     row.PublicID,
		PlanID: row.PlanID,
		Target: assignment.Target{
			PlayerID: row.PlayerID.String,
			TeamID:   row.TeamID.String,
		},
		CoachID:     row.CoachID,
		Status:      assignment.Status(row.Status),
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		ApprovedAt:  row.ApprovedAt,
		CancelledAt: row.CancelledAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// nullableID maps an empty target side to NULL so the check constraint on
// the table can enforce the one-of rule.
func nullableID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}
