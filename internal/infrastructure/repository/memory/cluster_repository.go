package memory

import (
	"context"
	"sync"

	"github.com/andrisetiawan/squadhub/internal/domain/cluster"
)

type ClusterRepository struct {
	mu    sync.RWMutex
	items map[string]cluster.Cluster
	order []string
}

func NewClusterRepository(clusters []cluster.Cluster) *ClusterRepository {
	items := make(map[string]cluster.Cluster, len(clusters))
	order := make([]string, 0, len(clusters))
	for _, item := range clusters {
		items[item.ID] = item
		order = append(order, item.ID)
	}

	return &ClusterRepository{items: items, order: order}
}

func (r *ClusterRepository) List(_ context.Context) ([]cluster.Cluster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cluster.Cluster, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *ClusterRepository) GetByID(_ context.Context, clusterID string) (cluster.Cluster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[clusterID]
	return item, ok, nil
}
