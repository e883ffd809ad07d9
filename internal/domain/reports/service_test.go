package reports

import (
	"context"
	"testing"
	"time"

	"kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
	"kasmoni-app-go/internal/domain/payments"
	"github.com/shopspring/decimal"
)

type fakeReportsRepo struct {
	memberCount  int64
	groupCount   int64
	paymentCount int64
	methodTotals []MethodTotal
	statusTotals []StatusTotal
	finesTotal   decimal.Decimal
	calls        int
}

func (f *fakeReportsRepo) CountMembers(ctx context.Context) (int64, error) {
	f.calls++
	return f.memberCount, nil
}

func (f *fakeReportsRepo) CountGroups(ctx context.Context) (int64, error) {
	return f.groupCount, nil
}

func (f *fakeReportsRepo) CountPayments(ctx context.Context, m month.Month) (int64, error) {
	return f.paymentCount, nil
}

func (f *fakeReportsRepo) MethodTotals(ctx context.Context, m month.Month) ([]MethodTotal, error) {
	return f.methodTotals, nil
}

func (f *fakeReportsRepo) StatusTotals(ctx context.Context, m month.Month) ([]StatusTotal, error) {
	return f.statusTotals, nil
}

func (f *fakeReportsRepo) FinesTotal(ctx context.Context, m month.Month) (decimal.Decimal, error) {
	return f.finesTotal, nil
}

func (f *fakeReportsRepo) PaymentLog(ctx context.Context, filter LogFilter) ([]PaymentLogEntry, int64, error) {
	return nil, 0, nil
}

type fakeActiveGroups struct {
	groups []groups.Group
}

func (f *fakeActiveGroups) ListActiveForMonth(ctx context.Context, m month.Month) ([]groups.Group, error) {
	return f.groups, nil
}

func TestDashboardAggregatesStatusTotals(t *testing.T) {
	repo := &fakeReportsRepo{
		memberCount:  12,
		groupCount:   3,
		paymentCount: 8,
		statusTotals: []StatusTotal{
			{Status: payments.StatusReceived, Total: decimal.NewFromInt(1500), Count: 3},
			{Status: payments.StatusSettled, Total: decimal.NewFromInt(500), Count: 1},
			{Status: payments.StatusPending, Total: decimal.NewFromInt(1000), Count: 2},
			{Status: payments.StatusNotPaid, Total: decimal.NewFromInt(250), Count: 2},
		},
	}
	activeGroups := &fakeActiveGroups{groups: []groups.Group{{ID: 1}, {ID: 2}}}
	svc := NewService(repo, activeGroups, 0)

	stats, err := svc.Dashboard(context.Background(), month.Of(2024, time.June))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.ActiveGroupCount != 2 {
		t.Fatalf("expected 2 active groups, got %d", stats.ActiveGroupCount)
	}
	if !stats.TotalReceived.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected received 2000, got %s", stats.TotalReceived)
	}
	if !stats.TotalPending.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected pending 1000, got %s", stats.TotalPending)
	}
}

func TestDashboardUsesCacheWithinTTL(t *testing.T) {
	repo := &fakeReportsRepo{memberCount: 5}
	svc := NewService(repo, &fakeActiveGroups{}, time.Minute)

	currentTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return currentTime }

	m := month.Of(2024, time.June)
	if _, err := svc.Dashboard(context.Background(), m); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.Dashboard(context.Background(), m); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one repo read within TTL, got %d", repo.calls)
	}

	currentTime = currentTime.Add(2 * time.Minute)
	if _, err := svc.Dashboard(context.Background(), m); err != nil {
		t.Fatalf("third call: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("expected refresh after TTL, got %d calls", repo.calls)
	}
}

func TestFinancialSummaryExpectedTotal(t *testing.T) {
	repo := &fakeReportsRepo{
		methodTotals: []MethodTotal{
			{Method: payments.MethodCash, Total: decimal.NewFromInt(700), Count: 2},
			{Method: payments.MethodBankTransfer, Total: decimal.NewFromInt(300), Count: 1},
		},
		finesTotal: decimal.NewFromInt(25),
	}
	activeGroups := &fakeActiveGroups{groups: []groups.Group{
		{ID: 1, MonthlyAmount: decimal.NewFromInt(500)},
		{ID: 2, MonthlyAmount: decimal.NewFromInt(250)},
	}}
	svc := NewService(repo, activeGroups, 0)

	summary, err := svc.FinancialSummary(context.Background(), month.Of(2024, time.June))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !summary.ExpectedTotal.Equal(decimal.NewFromInt(750)) {
		t.Fatalf("expected total 750, got %s", summary.ExpectedTotal)
	}
	if !summary.FinesTotal.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected fines 25, got %s", summary.FinesTotal)
	}
	if len(summary.ByMethod) != 2 {
		t.Fatalf("expected 2 method rows, got %d", len(summary.ByMethod))
	}
}
