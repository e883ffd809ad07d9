package payments

import (
	"context"

	"kasmoni-app-go/internal/domain/month"
)

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, paymentID int64) (*Payment, error)
	Delete(ctx context.Context, paymentID int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Payment, int64, error)
	// CountBySlot counts payments matching the resolved identity, regardless of
	// payment month.
	CountBySlot(ctx context.Context, memberID, groupID, slotID int64) (int64, error)
	// CountByComposite counts payments for the member/group whose attached
	// slot's month matches, restricted to the given payment month.
	CountByComposite(ctx context.Context, memberID, groupID int64, monthDate, paymentMonth month.Month) (int64, error)
	// ListPaidSlots returns one row per payment the member made in the given
	// payment month, joined with the slot it targets.
	ListPaidSlots(ctx context.Context, memberID int64, paymentMonth month.Month) ([]PaidSlotRow, error)
}
