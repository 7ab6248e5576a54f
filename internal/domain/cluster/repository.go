package cluster

import "context"

// Repository describes cluster persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Cluster, error)
	GetByID(ctx context.Context, clusterID string) (Cluster, bool, error)
}
