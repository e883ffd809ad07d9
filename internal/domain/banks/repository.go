package banks

import "context"

type Repository interface {
	Create(ctx context.Context, bank *Bank) error
	GetByID(ctx context.Context, bankID int64) (*Bank, error)
	List(ctx context.Context) ([]Bank, error)
	Delete(ctx context.Context, bankID int64) (bool, error)
	HasPayments(ctx context.Context, bankID int64) (bool, error)
}
