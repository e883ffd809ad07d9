package activity

import "context"

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter ListFilter) ([]Entry, int64, error)
}
