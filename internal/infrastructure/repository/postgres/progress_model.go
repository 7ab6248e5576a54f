package postgres

import (
	"database/sql"
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/progress"
)

type progressTableModel struct {
	ID                   int64          `db:"id"`
	PublicID             string         `db:"public_id"`
	AssignmentID         string         `db:"assignment_public_id"`
	RecordedByPlayerID   sql.NullString `db:"recorded_by_player_id"`
	RecordedByCoachID    sql.NullString `db:"recorded_by_coach_id"`
	Date                 time.Time      `db:"record_date"`
	CompletionPercentage int            `db:"completion_percentage"`
	Notes                string         `db:"notes"`
	CoachVerified        bool           `db:"coach_verified"`
	VerifiedByCoachID    string         `db:"verified_by_coach_id"`
	VerifiedAt           *time.Time     `db:"verified_at"`
	VerificationComment  string         `db:"verification_comment"`
	CreatedAt            time.Time      `db:"created_at"`
}

type progressInsertModel struct {
	PublicID             string         `db:"public_id"`
	AssignmentID         string         `db:"assignment_public_id"`
	RecordedByPlayerID   sql.NullString `db:"recorded_by_player_id"`
	RecordedByCoachID    sql.NullString `db:"recorded_by_coach_id"`
	Date                 time.Time      `db:"record_date"`
	CompletionPercentage int            `db:"completion_percentage"`
	Notes                string         `db:"notes"`
	CreatedAt            time.Time      `db:"created_at"`
}

func progressFromRow(row progressTableModel) progress.Record {
	return progress.Record{
		ID:           row.PublicID,
		AssignmentID: row.AssignmentID,
		RecordedBy: progress.Actor{
			PlayerID: row.RecordedByPlayerID.String,
			CoachID:  row.RecordedByCoachID.String,
		},
		Date:                 row.Date,
		CompletionPercentage: row.CompletionPercentage,
		Notes:                row.Notes,
		CoachVerified:        row.CoachVerified,
		VerifiedByCoachID:    row.VerifiedByCoachID,
		VerifiedAt:           row.VerifiedAt,
		VerificationComment:  row.VerificationComment,
		CreatedAt:            row.CreatedAt,
	}
}
