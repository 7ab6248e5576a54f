package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andrisetiawan/squadhub/internal/domain/cluster"
	qb "github.com/andrisetiawan/squadhub/internal/platform/querybuilder"
)

type ClusterRepository struct {
	db *sqlx.DB
}

func NewClusterRepository(db *sqlx.DB) *ClusterRepository {
	return &ClusterRepository{db: db}
}

func (r *ClusterRepository) List(ctx context.Context) ([]cluster.Cluster, error) {
	query, args, err := qb.Select("*").From("clusters").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clusters query: %w", err)
	}

	var rows []clusterTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clusters: %w", err)
	}

	out := make([]cluster.Cluster, 0, len(rows))
	for _, row := range rows {
		out = append(out, clusterFromRow(row))
	}
	return out, nil
}

func (r *ClusterRepository) GetByID(ctx context.Context, clusterID string) (cluster.Cluster, bool, error) {
	query, args, err := qb.Select("*").From("clusters").
		Where(
			qb.Eq("public_id", clusterID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return cluster.Cluster{}, false, fmt.Errorf("build get cluster by id query: %w", err)
	}

	var row clusterTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return cluster.Cluster{}, false, nil
		}
		return cluster.Cluster{}, false, fmt.Errorf("get cluster by id: %w", err)
	}
	return clusterFromRow(row), true, nil
}
