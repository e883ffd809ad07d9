package slots

import (
	"context"

	"kasmoni-app-go/internal/domain/month"
)

type Repository interface {
	GetByID(ctx context.Context, slotID int64) (*PaymentSlot, error)
	GetByTriple(ctx context.Context, groupID, memberID int64, monthDate month.Month) (*PaymentSlot, error)
	// Create returns ErrSlotExists when a row for the same (group, member, month)
	// triple already exists.
	Create(ctx context.Context, slot *PaymentSlot) error
	ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]PaymentSlot, error)
}
