package reports

import (
	"context"

	"kasmoni-app-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CountMembers(ctx context.Context) (int64, error)
	CountGroups(ctx context.Context) (int64, error)
	CountPayments(ctx context.Context, m month.Month) (int64, error)
	MethodTotals(ctx context.Context, m month.Month) ([]MethodTotal, error)
	StatusTotals(ctx context.Context, m month.Month) ([]StatusTotal, error)
	FinesTotal(ctx context.Context, m month.Month) (decimal.Decimal, error)
	PaymentLog(ctx context.Context, filter LogFilter) ([]PaymentLogEntry, int64, error)
}
