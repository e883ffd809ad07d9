package payments

import (
	"time"

	"kasmoni-app-go/internal/domain/month"
	"kasmoni-app-go/internal/domain/slots"
	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
)

func (m Method) Valid() bool {
	return m == MethodCash || m == MethodBankTransfer
}

type Status string

const (
	StatusNotPaid  Status = "not_paid"
	StatusPending  Status = "pending"
	StatusReceived Status = "received"
	StatusSettled  Status = "settled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotPaid, StatusPending, StatusReceived, StatusSettled:
		return true
	default:
		return false
	}
}

// Payment records money received against a slot. PaymentMonth is the month the
// payment is recorded in, distinct from the slot's month (the month being paid
// for). Status only changes through administrator edits.
type Payment struct {
	ID              int64           `gorm:"primaryKey"`
	MemberID        int64           `gorm:"not null;index"`
	GroupID         int64           `gorm:"not null;index"`
	SlotID          int64           `gorm:"not null;index"`
	PaymentDate     time.Time       `gorm:"type:date;not null"`
	PaymentMonth    month.Month     `gorm:"type:text;not null;column:payment_month"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod   Method          `gorm:"type:varchar(16);not null"`
	SenderBankID    *int64          `gorm:"index"`
	ReceiverBankID  *int64          `gorm:"index"`
	Status          Status          `gorm:"type:varchar(16);not null"`
	Notes           string          `gorm:"type:text"`
	FineAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	IsLatePayment   bool            `gorm:"not null;default:false"`
	PaymentDeadline *time.Time      `gorm:"type:date"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

type CreatePaymentInput struct {
	MemberID        int64
	GroupID         int64
	Slot            slots.Ref
	PaymentDate     time.Time
	PaymentMonth    month.Month
	Amount          decimal.Decimal
	PaymentMethod   Method
	SenderBankID    *int64
	ReceiverBankID  *int64
	Status          Status
	Notes           string
	FineAmount      decimal.Decimal
	IsLatePayment   bool
	PaymentDeadline *time.Time
}

type UpdatePaymentInput struct {
	ID              int64
	PaymentDate     time.Time
	Amount          decimal.Decimal
	PaymentMethod   Method
	SenderBankID    *int64
	ReceiverBankID  *int64
	Status          Status
	Notes           string
	FineAmount      decimal.Decimal
	IsLatePayment   bool
	PaymentDeadline *time.Time
}

type ListFilter struct {
	GroupID      *int64
	MemberID     *int64
	PaymentMonth *month.Month
	Status       Status
	Method       Method
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// CheckResult is the named fail-open duplicate policy: when the check cannot be
// evaluated, Known is false and callers treat the result as "no duplicate"
// rather than blocking the save.
type CheckResult struct {
	Known     bool
	Duplicate bool
}

func Confirmed(duplicate bool) CheckResult {
	return CheckResult{Known: true, Duplicate: duplicate}
}

func Inconclusive() CheckResult {
	return CheckResult{}
}

// PaidSlotRow describes one existing payment joined with its slot, used to mark
// combinations that already carry a payment for the current payment month.
type PaidSlotRow struct {
	GroupID   int64
	MemberID  int64
	SlotID    int64
	MonthDate month.Month
}

// Combination is one payable (active group, assigned month) pairing offered in
// the multi-group workflow.
type Combination struct {
	GroupID     int64           `json:"group_id"`
	GroupName   string          `json:"group_name"`
	MemberID    int64           `json:"member_id"`
	MonthDate   month.Month     `json:"month_date"`
	Amount      decimal.Decimal `json:"amount"`
	SlotID      *int64          `json:"slot_id,omitempty"`
	FormValue   string          `json:"form_value"`
	AlreadyPaid bool            `json:"already_paid"`
}
