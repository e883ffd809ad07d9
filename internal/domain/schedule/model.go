package schedule

import (
	"time"

	"kasmoni-app-go/internal/domain/month"
)

// Assignment states that a member is due to fill a slot in a given month of a
// group's cycle. It exists before any payment slot is materialized.
type Assignment struct {
	ID        int64       `gorm:"primaryKey"`
	GroupID   int64       `gorm:"not null;index"`
	MemberID  int64       `gorm:"not null;index"`
	MonthDate month.Month `gorm:"type:text;not null;column:month_date"`
	CreatedAt time.Time   `gorm:"autoCreateTime"`
}

func (Assignment) TableName() string {
	return "group_members"
}

type AssignInput struct {
	GroupID   int64
	MemberID  int64
	MonthDate month.Month
}
