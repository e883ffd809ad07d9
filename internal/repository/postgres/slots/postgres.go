package slots

import (
	"context"
	"errors"

	"kasmoni-app-go/internal/domain/month"
	slotsdomain "kasmoni-app-go/internal/domain/slots"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, slotID int64) (*slotsdomain.PaymentSlot, error) {
	var slot slotsdomain.PaymentSlot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, slotsdomain.ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *PostgresRepository) GetByTriple(ctx context.Context, groupID, memberID int64, monthDate month.Month) (*slotsdomain.PaymentSlot, error) {
	var slot slotsdomain.PaymentSlot
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND member_id = ? AND month_date = ?", groupID, memberID, monthDate).
		First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, slotsdomain.ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *PostgresRepository) Create(ctx context.Context, slot *slotsdomain.PaymentSlot) error {
	err := r.db.WithContext(ctx).Create(slot).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return slotsdomain.ErrSlotExists
	}
	return err
}

func (r *PostgresRepository) ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]slotsdomain.PaymentSlot, error) {
	var slots []slotsdomain.PaymentSlot
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		Order("month_date asc").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}
