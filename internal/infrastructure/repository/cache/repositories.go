package cache

import (
	"context"

	"github.com/andrisetiawan/squadhub/internal/domain/cluster"
	"github.com/andrisetiawan/squadhub/internal/domain/coach"
	"github.com/andrisetiawan/squadhub/internal/domain/player"
	basecache "github.com/andrisetiawan/squadhub/internal/platform/cache"
)

// The decorators below cache the read-only reference entities. Workflow
// entities (join requests, plans, assignments, progress) stay uncached
// because their reads must observe writes immediately.

type ClusterRepository struct {
	next  cluster.Repository
	cache *basecache.Store
}

func NewClusterRepository(next cluster.Repository, cache *basecache.Store) *ClusterRepository {
	return &ClusterRepository{next: next, cache: cache}
}

func (r *ClusterRepository) List(ctx context.Context) ([]cluster.Cluster, error) {
	v, err := r.cache.GetOrLoad(ctx, "cluster:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]cluster.Cluster(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]cluster.Cluster)
	return append([]cluster.Cluster(nil), items...), nil
}

func (r *ClusterRepository) GetByID(ctx context.Context, clusterID string) (cluster.Cluster, bool, error) {
	key := "cluster:id:" + clusterID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, clusterID)
		if err != nil {
			return nil, err
		}
		return cachedClusterByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return cluster.Cluster{}, false, err
	}

	cached, _ := v.(cachedClusterByID)
	return cached.value, cached.exists, nil
}

type cachedClusterByID struct {
	value  cluster.Cluster
	exists bool
}

type CoachRepository struct {
	next  coach.Repository
	cache *basecache.Store
}

func NewCoachRepository(next coach.Repository, cache *basecache.Store) *CoachRepository {
	return &CoachRepository{next: next, cache: cache}
}

func (r *CoachRepository) List(ctx context.Context) ([]coach.Coach, error) {
	v, err := r.cache.GetOrLoad(ctx, "coach:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]coach.Coach(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]coach.Coach)
	return append([]coach.Coach(nil), items...), nil
}

func (r *CoachRepository) GetByID(ctx context.Context, coachID string) (coach.Coach, bool, error) {
	key := "coach:id:" + coachID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, coachID)
		if err != nil {
			return nil, err
		}
		return cachedCoachByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return coach.Coach{}, false, err
	}

	cached, _ := v.(cachedCoachByID)
	return cached.value, cached.exists, nil
}

type cachedCoachByID struct {
	value  coach.Coach
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}
