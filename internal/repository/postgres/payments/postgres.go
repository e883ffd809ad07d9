package payments

import (
	"context"
	"errors"

	"kasmoni-app-go/internal/domain/month"
	paymentsdomain "kasmoni-app-go/internal/domain/payments"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, payment *paymentsdomain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PostgresRepository) Update(ctx context.Context, payment *paymentsdomain.Payment) error {
	return r.db.WithContext(ctx).
		Model(&paymentsdomain.Payment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"payment_date":     payment.PaymentDate,
			"amount":           payment.Amount,
			"payment_method":   payment.PaymentMethod,
			"sender_bank_id":   payment.SenderBankID,
			"receiver_bank_id": payment.ReceiverBankID,
			"status":           payment.Status,
			"notes":            payment.Notes,
			"fine_amount":      payment.FineAmount,
			"is_late_payment":  payment.IsLatePayment,
			"payment_deadline": payment.PaymentDeadline,
			"updated_at":       payment.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, paymentID int64) (*paymentsdomain.Payment, error) {
	var payment paymentsdomain.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, paymentsdomain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, paymentID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&paymentsdomain.Payment{}, "id = ?", paymentID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) List(ctx context.Context, filter paymentsdomain.ListFilter) ([]paymentsdomain.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&paymentsdomain.Payment{})

	if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.PaymentMonth != nil {
		query = query.Where("payment_month = ?", *filter.PaymentMonth)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Method != "" {
		query = query.Where("payment_method = ?", filter.Method)
	}
	if filter.From != nil {
		query = query.Where("payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payment_date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var payments []paymentsdomain.Payment
	if err := query.Order("payment_date desc, id desc").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PostgresRepository) CountBySlot(ctx context.Context, memberID, groupID, slotID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&paymentsdomain.Payment{}).
		Where("member_id = ? AND group_id = ? AND slot_id = ?", memberID, groupID, slotID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountByComposite(ctx context.Context, memberID, groupID int64, monthDate, paymentMonth month.Month) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&paymentsdomain.Payment{}).
		Joins("JOIN payment_slots ON payment_slots.id = payments.slot_id").
		Where("payments.member_id = ? AND payments.group_id = ?", memberID, groupID).
		Where("payment_slots.month_date = ?", monthDate).
		Where("payments.payment_month = ?", paymentMonth).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListPaidSlots(ctx context.Context, memberID int64, paymentMonth month.Month) ([]paymentsdomain.PaidSlotRow, error) {
	var rows []paymentsdomain.PaidSlotRow
	err := r.db.WithContext(ctx).
		Model(&paymentsdomain.Payment{}).
		Select("payments.group_id, payments.member_id, payments.slot_id, payment_slots.month_date").
		Joins("JOIN payment_slots ON payment_slots.id = payments.slot_id").
		Where("payments.member_id = ? AND payments.payment_month = ?", memberID, paymentMonth).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
