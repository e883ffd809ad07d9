package slots

import (
	"time"

	"kasmoni-app-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

// PaymentSlot is the persisted anchor payments attach to. It is materialized
// lazily the first time a payment targets a (group, member, month) triple and is
// never updated or deleted afterwards.
type PaymentSlot struct {
	ID        int64           `gorm:"primaryKey"`
	GroupID   int64           `gorm:"not null;index:idx_payment_slots_triple,unique"`
	MemberID  int64           `gorm:"not null;index:idx_payment_slots_triple,unique"`
	MonthDate month.Month     `gorm:"type:text;not null;column:month_date;index:idx_payment_slots_triple,unique"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DueDate   time.Time       `gorm:"type:date;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (PaymentSlot) TableName() string {
	return "payment_slots"
}
