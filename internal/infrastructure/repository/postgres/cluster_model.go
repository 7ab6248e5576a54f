package postgres

import (
	"time"

	"github.com/andrisetiawan/squadhub/internal/domain/cluster"
)

type clusterTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Location  string     `db:"location"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func clusterFromRow(row clusterTableModel) cluster.Cluster {
	return cluster.Cluster{
		ID:        row.PublicID,
		Name:      row.Name,
		Location:  row.Location,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
