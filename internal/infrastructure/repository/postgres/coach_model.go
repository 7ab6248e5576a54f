package postgres

import (
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/coach"
)

type coachTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Specialty string     `db:"specialty"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func coachFromRow(row coachTableModel) coach.Coach {
	return coach.Coach{
		ID:        row.PublicID,
		Name:      row.Name,
		Specialty: row.Specialty,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
