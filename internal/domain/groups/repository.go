package groups

import "context"

type Repository interface {
	Create(ctx context.Context, group *Group) error
	Update(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, groupID int64) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	Delete(ctx context.Context, groupID int64) (bool, error)
	HasPayments(ctx context.Context, groupID int64) (bool, error)
}
