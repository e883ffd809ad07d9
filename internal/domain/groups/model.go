package groups

import (
	"time"

	"kasmoni-app-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

type Group struct {
	ID            int64           `gorm:"primaryKey"`
	Name          string          `gorm:"not null"`
	MonthlyAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StartDate     *time.Time      `gorm:"type:date"`
	EndDate       *time.Time      `gorm:"type:date"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

// ActiveForMonth reports whether the group's start/end window covers the given
// month. Both boundaries are inclusive at month granularity, so a group starting
// mid-month is active for its start month. A group with neither date is always
// active.
func (g Group) ActiveForMonth(m month.Month) bool {
	if g.StartDate != nil && m.Before(month.FromTime(*g.StartDate)) {
		return false
	}
	if g.EndDate != nil && m.After(month.FromTime(*g.EndDate)) {
		return false
	}
	return true
}

type CreateGroupInput struct {
	Name          string
	MonthlyAmount decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
}

type UpdateGroupInput struct {
	ID            int64
	Name          string
	MonthlyAmount decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
}
