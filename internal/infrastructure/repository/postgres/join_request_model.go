package postgres

import (
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/joinrequest"
)

type joinRequestTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	PlayerID      string     `db:"player_public_id"`
	TeamID        string     `db:"team_public_id"`
	CoachID       string     `db:"coach_public_id"`
	Status        string     `db:"status"`
	ReviewComment string     `db:"review_comment"`
	CreatedAt     time.Time  `db:"created_at"`
	ReviewedAt    *time.Time `db:"reviewed_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type joinRequestInsertModel struct {
	PublicID  string    `db:"public_id"`
	PlayerID  string    `db:"player_public_id"`
	TeamID    string    `db:"team_public_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func joinRequestFromRow(row joinRequestTableModel) joinrequest.JoinRequest {
	return joinrequest.JoinRequest{
		ID:            row.PublicID,
		PlayerID:      row.PlayerID,
		TeamID:        row.TeamID,
		CoachID:       row.CoachID,
		Status:        joinrequest.Status(row.Status),
		ReviewComment: row.ReviewComment,
		CreatedAt:     row.CreatedAt,
		ReviewedAt:    row.ReviewedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
