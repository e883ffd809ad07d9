package members

import "context"

type Repository interface {
	Create(ctx context.Context, member *Member) error
	Update(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, memberID int64) (*Member, error)
	List(ctx context.Context, filter ListFilter) ([]Member, int64, error)
	Delete(ctx context.Context, memberID int64) (bool, error)
	HasAssignments(ctx context.Context, memberID int64) (bool, error)
	HasPayments(ctx context.Context, memberID int64) (bool, error)
}
