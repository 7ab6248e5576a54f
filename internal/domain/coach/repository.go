package coach

import "context"

// Repository describes coach persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Coach, error)
	GetByID(ctx context.Context, coachID string) (Coach, bool, error)
}
