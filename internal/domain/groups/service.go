package groups

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kasmoni-app-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, input CreateGroupInput) (*Group, error) {
	if err := validateInput(input.Name, input.MonthlyAmount, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	group := Group{
		Name:          strings.TrimSpace(input.Name),
		MonthlyAmount: input.MonthlyAmount,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
	}

	if err := s.repo.Create(ctx, &group); err != nil {
		return nil, err
	}

	return &group, nil
}

func (s *Service) Update(ctx context.Context, input UpdateGroupInput) (*Group, error) {
	if err := validateInput(input.Name, input.MonthlyAmount, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	group, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	group.Name = strings.TrimSpace(input.Name)
	group.MonthlyAmount = input.MonthlyAmount
	group.StartDate = input.StartDate
	group.EndDate = input.EndDate
	group.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *Service) Get(ctx context.Context, groupID int64) (*Group, error) {
	return s.repo.GetByID(ctx, groupID)
}

func (s *Service) List(ctx context.Context) ([]Group, error) {
	return s.repo.List(ctx)
}

// ListActiveForMonth returns the groups whose start/end window covers the given
// month, in stored order.
func (s *Service) ListActiveForMonth(ctx context.Context, m month.Month) ([]Group, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]Group, 0, len(all))
	for _, group := range all {
		if group.ActiveForMonth(m) {
			active = append(active, group)
		}
	}
	return active, nil
}

// Delete refuses to remove a group that payments still reference.
func (s *Service) Delete(ctx context.Context, groupID int64) error {
	inUse, err := s.repo.HasPayments(ctx, groupID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrGroupHasPayments
	}

	deleted, err := s.repo.Delete(ctx, groupID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGroupNotFound
	}
	return nil
}

func validateInput(name string, monthlyAmount decimal.Decimal, startDate, endDate *time.Time) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if !monthlyAmount.IsPositive() {
		return fmt.Errorf("monthly amount must be positive")
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return ErrInvalidDateRange
	}
	return nil
}
