package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
)

type GroupGetter interface {
	Get(ctx context.Context, groupID int64) (*groups.Group, error)
}

// Service resolves (member, group, month) triples to persisted slot rows,
// materializing missing rows on first use.
type Service struct {
	repo   Repository
	groups GroupGetter
	now    func() time.Time
}

func NewService(repo Repository, groups GroupGetter) *Service {
	return &Service{
		repo:   repo,
		groups: groups,
		now:    time.Now,
	}
}

// Resolve returns the slot row for the triple, creating it when absent. The new
// row takes the group's current monthly amount and today's date as due date.
// When a concurrent resolver wins the insert race, the conflicting row is
// re-fetched and returned, so Resolve never yields a duplicate triple.
func (s *Service) Resolve(ctx context.Context, memberID, groupID int64, monthDate month.Month) (*PaymentSlot, bool, error) {
	existing, err := s.repo.GetByTriple(ctx, groupID, memberID, monthDate)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrSlotNotFound) {
		return nil, false, fmt.Errorf("lookup payment slot: %w", err)
	}

	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, false, fmt.Errorf("lookup group for slot: %w", err)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	slot := PaymentSlot{
		GroupID:   groupID,
		MemberID:  memberID,
		MonthDate: monthDate,
		Amount:    group.MonthlyAmount,
		DueDate:   today,
	}

	err = s.repo.Create(ctx, &slot)
	if err == nil {
		return &slot, true, nil
	}
	if errors.Is(err, ErrSlotExists) {
		existing, fetchErr := s.repo.GetByTriple(ctx, groupID, memberID, monthDate)
		if fetchErr != nil {
			return nil, false, fmt.Errorf("refetch payment slot after conflict: %w", fetchErr)
		}
		return existing, false, nil
	}

	// A payment without a valid slot reference is meaningless, so creation
	// failures must abort the enclosing save.
	return nil, false, fmt.Errorf("create payment slot: %w", err)
}

// ResolveRef resolves either identity shape to a persisted slot row.
func (s *Service) ResolveRef(ctx context.Context, memberID int64, ref Ref) (*PaymentSlot, bool, error) {
	if groupID, refMemberID, monthDate, ok := ref.Composite(); ok {
		if refMemberID != 0 {
			memberID = refMemberID
		}
		return s.Resolve(ctx, memberID, groupID, monthDate)
	}

	slotID, _ := ref.SlotID()
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, false, err
	}
	return slot, false, nil
}

func (s *Service) Get(ctx context.Context, slotID int64) (*PaymentSlot, error) {
	return s.repo.GetByID(ctx, slotID)
}

func (s *Service) ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]PaymentSlot, error) {
	return s.repo.ListByGroupAndMember(ctx, groupID, memberID)
}
