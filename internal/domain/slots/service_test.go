package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

type fakeSlotRepo struct {
	slots     []PaymentSlot
	nextID    int64
	createErr error
	// forceConflict makes the first Create fail as if a concurrent resolver
	// inserted the row, after planting the competing row.
	forceConflict bool
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, slotID int64) (*PaymentSlot, error) {
	for _, slot := range f.slots {
		if slot.ID == slotID {
			copied := slot
			return &copied, nil
		}
	}
	return nil, ErrSlotNotFound
}

func (f *fakeSlotRepo) GetByTriple(ctx context.Context, groupID, memberID int64, monthDate month.Month) (*PaymentSlot, error) {
	for _, slot := range f.slots {
		if slot.GroupID == groupID && slot.MemberID == memberID && slot.MonthDate == monthDate {
			copied := slot
			return &copied, nil
		}
	}
	return nil, ErrSlotNotFound
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *PaymentSlot) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.forceConflict {
		f.forceConflict = false
		f.nextID++
		f.slots = append(f.slots, PaymentSlot{
			ID:        f.nextID,
			GroupID:   slot.GroupID,
			MemberID:  slot.MemberID,
			MonthDate: slot.MonthDate,
			Amount:    slot.Amount,
			DueDate:   slot.DueDate,
		})
		return ErrSlotExists
	}
	f.nextID++
	slot.ID = f.nextID
	f.slots = append(f.slots, *slot)
	return nil
}

func (f *fakeSlotRepo) ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]PaymentSlot, error) {
	var result []PaymentSlot
	for _, slot := range f.slots {
		if slot.GroupID == groupID && slot.MemberID == memberID {
			result = append(result, slot)
		}
	}
	return result, nil
}

type fakeGroupGetter struct {
	group *groups.Group
	err   error
}

func (f *fakeGroupGetter) Get(ctx context.Context, groupID int64) (*groups.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.group, nil
}

func newTestService(repo *fakeSlotRepo) *Service {
	svc := NewService(repo, &fakeGroupGetter{
		group: &groups.Group{ID: 3, Name: "Group A", MonthlyAmount: decimal.NewFromInt(500)},
	})
	svc.now = func() time.Time {
		return time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestResolveMaterializesMissingSlot(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := newTestService(repo)
	monthDate := month.Of(2024, time.June)

	slot, isNew, err := svc.Resolve(context.Background(), 7, 3, monthDate)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !isNew {
		t.Fatal("expected isNew=true on first resolve")
	}
	if !slot.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected amount from group, got %s", slot.Amount)
	}
	wantDue := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if !slot.DueDate.Equal(wantDue) {
		t.Fatalf("expected due date %v, got %v", wantDue, slot.DueDate)
	}
}

func TestResolveIsIdempotentSequentially(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := newTestService(repo)
	monthDate := month.Of(2024, time.June)

	first, isNew, err := svc.Resolve(context.Background(), 7, 3, monthDate)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if !isNew {
		t.Fatal("expected first resolve to create")
	}

	second, isNew, err := svc.Resolve(context.Background(), 7, 3, monthDate)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if isNew {
		t.Fatal("expected isNew=false on second resolve")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same slot id, got %d then %d", first.ID, second.ID)
	}
	if len(repo.slots) != 1 {
		t.Fatalf("expected one slot row, got %d", len(repo.slots))
	}
}

func TestResolveReturnsExistingRowOnInsertConflict(t *testing.T) {
	repo := &fakeSlotRepo{forceConflict: true}
	svc := newTestService(repo)
	monthDate := month.Of(2024, time.June)

	slot, isNew, err := svc.Resolve(context.Background(), 7, 3, monthDate)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if isNew {
		t.Fatal("expected isNew=false when the concurrent row wins")
	}
	if slot.ID == 0 {
		t.Fatal("expected the competing row to be returned")
	}
	if len(repo.slots) != 1 {
		t.Fatalf("expected one slot row, got %d", len(repo.slots))
	}
}

func TestResolveSurfacesCreateFailure(t *testing.T) {
	repo := &fakeSlotRepo{createErr: errors.New("connection reset")}
	svc := newTestService(repo)

	_, _, err := svc.Resolve(context.Background(), 7, 3, month.Of(2024, time.June))
	if err == nil {
		t.Fatal("expected error when slot creation fails")
	}
}

func TestResolveRefWithResolvedID(t *testing.T) {
	repo := &fakeSlotRepo{slots: []PaymentSlot{{ID: 42, GroupID: 3, MemberID: 7, MonthDate: month.Of(2024, time.June)}}, nextID: 42}
	svc := newTestService(repo)

	slot, isNew, err := svc.ResolveRef(context.Background(), 7, RefFromID(42))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if isNew {
		t.Fatal("expected isNew=false for resolved id")
	}
	if slot.ID != 42 {
		t.Fatalf("expected slot 42, got %d", slot.ID)
	}
}
