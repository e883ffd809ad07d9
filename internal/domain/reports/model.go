package reports

import (
	"time"

	"kasmoni-app-go/internal/domain/month"
	"kasmoni-app-go/internal/domain/payments"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	Month            month.Month     `json:"month"`
	MemberCount      int64           `json:"member_count"`
	GroupCount       int64           `json:"group_count"`
	ActiveGroupCount int64           `json:"active_group_count"`
	PaymentCount     int64           `json:"payment_count"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	TotalPending     decimal.Decimal `json:"total_pending"`
}

type MethodTotal struct {
	Method payments.Method `json:"method"`
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
}

type StatusTotal struct {
	Status payments.Status `json:"status"`
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
}

type FinancialSummary struct {
	Month         month.Month     `json:"month"`
	ByMethod      []MethodTotal   `json:"by_method"`
	ByStatus      []StatusTotal   `json:"by_status"`
	FinesTotal    decimal.Decimal `json:"fines_total"`
	ExpectedTotal decimal.Decimal `json:"expected_total"`
}

type PaymentLogEntry struct {
	PaymentID   int64           `json:"payment_id"`
	PaymentDate time.Time       `json:"payment_date"`
	MemberName  string          `json:"member_name"`
	GroupName   string          `json:"group_name"`
	Amount      decimal.Decimal `json:"amount"`
	Method      payments.Method `json:"method"`
	Status      payments.Status `json:"status"`
}

type LogFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
