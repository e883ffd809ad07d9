package reports

import (
	"context"
	"sync"
	"time"

	"kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
	"kasmoni-app-go/internal/domain/payments"
	"github.com/shopspring/decimal"
)

type GroupsService interface {
	ListActiveForMonth(ctx context.Context, m month.Month) ([]groups.Group, error)
}

type Service struct {
	repo           Repository
	groups         GroupsService
	dashboardTTL   time.Duration
	dashboardCache dashboardCache
	now            func() time.Time
}

func NewService(repo Repository, groupsService GroupsService, dashboardTTL time.Duration) *Service {
	return &Service{
		repo:         repo,
		groups:       groupsService,
		dashboardTTL: dashboardTTL,
		dashboardCache: dashboardCache{
			items: make(map[string]dashboardCacheItem),
		},
		now: time.Now,
	}
}

// Dashboard folds member, group and payment counts for the month into one
// result, cached per month for the configured TTL.
func (s *Service) Dashboard(ctx context.Context, m month.Month) (DashboardStats, error) {
	now := s.now()
	cacheKey := m.String()
	if s.dashboardTTL > 0 {
		if stats, ok := s.dashboardCache.Get(cacheKey, now); ok {
			return stats, nil
		}
	}

	stats, err := s.buildDashboard(ctx, m)
	if err != nil {
		return DashboardStats{}, err
	}

	if s.dashboardTTL > 0 {
		s.dashboardCache.Set(cacheKey, stats, now.Add(s.dashboardTTL))
	}
	return stats, nil
}

func (s *Service) buildDashboard(ctx context.Context, m month.Month) (DashboardStats, error) {
	memberCount, err := s.repo.CountMembers(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	groupCount, err := s.repo.CountGroups(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	active, err := s.groups.ListActiveForMonth(ctx, m)
	if err != nil {
		return DashboardStats{}, err
	}
	paymentCount, err := s.repo.CountPayments(ctx, m)
	if err != nil {
		return DashboardStats{}, err
	}
	statusTotals, err := s.repo.StatusTotals(ctx, m)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		Month:            m,
		MemberCount:      memberCount,
		GroupCount:       groupCount,
		ActiveGroupCount: int64(len(active)),
		PaymentCount:     paymentCount,
		TotalReceived:    decimal.Zero,
		TotalPending:     decimal.Zero,
	}
	for _, row := range statusTotals {
		switch row.Status {
		case payments.StatusReceived, payments.StatusSettled:
			stats.TotalReceived = stats.TotalReceived.Add(row.Total)
		case payments.StatusPending:
			stats.TotalPending = stats.TotalPending.Add(row.Total)
		}
	}

	return stats, nil
}

// FinancialSummary breaks a month's payments down by method and status and
// compares against the expected intake of all groups active that month.
func (s *Service) FinancialSummary(ctx context.Context, m month.Month) (FinancialSummary, error) {
	byMethod, err := s.repo.MethodTotals(ctx, m)
	if err != nil {
		return FinancialSummary{}, err
	}
	byStatus, err := s.repo.StatusTotals(ctx, m)
	if err != nil {
		return FinancialSummary{}, err
	}
	finesTotal, err := s.repo.FinesTotal(ctx, m)
	if err != nil {
		return FinancialSummary{}, err
	}

	active, err := s.groups.ListActiveForMonth(ctx, m)
	if err != nil {
		return FinancialSummary{}, err
	}
	expected := decimal.Zero
	for _, group := range active {
		expected = expected.Add(group.MonthlyAmount)
	}

	return FinancialSummary{
		Month:         m,
		ByMethod:      byMethod,
		ByStatus:      byStatus,
		FinesTotal:    finesTotal,
		ExpectedTotal: expected,
	}, nil
}

func (s *Service) PaymentLog(ctx context.Context, filter LogFilter) ([]PaymentLogEntry, int64, error) {
	return s.repo.PaymentLog(ctx, filter)
}

type dashboardCache struct {
	mu    sync.RWMutex
	items map[string]dashboardCacheItem
}

type dashboardCacheItem struct {
	stats     DashboardStats
	expiresAt time.Time
}

func (c *dashboardCache) Get(key string, now time.Time) (DashboardStats, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return DashboardStats{}, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return DashboardStats{}, false
	}

	return item.stats, true
}

func (c *dashboardCache) Set(key string, stats DashboardStats, expiresAt time.Time) {
	c.mu.Lock()
	c.items[key] = dashboardCacheItem{stats: stats, expiresAt: expiresAt}
	c.mu.Unlock()
}
