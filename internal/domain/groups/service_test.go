package groups

import (
	"context"
	"testing"
	"time"

	"kasmoni-app-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

type fakeGroupRepo struct {
	groups      []Group
	nextID      int64
	hasPayments map[int64]bool
}

func (f *fakeGroupRepo) Create(ctx context.Context, group *Group) error {
	f.nextID++
	group.ID = f.nextID
	f.groups = append(f.groups, *group)
	return nil
}

func (f *fakeGroupRepo) Update(ctx context.Context, group *Group) error {
	for i := range f.groups {
		if f.groups[i].ID == group.ID {
			f.groups[i] = *group
			return nil
		}
	}
	return ErrGroupNotFound
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, groupID int64) (*Group, error) {
	for _, group := range f.groups {
		if group.ID == groupID {
			copied := group
			return &copied, nil
		}
	}
	return nil, ErrGroupNotFound
}

func (f *fakeGroupRepo) List(ctx context.Context) ([]Group, error) {
	result := make([]Group, len(f.groups))
	copy(result, f.groups)
	return result, nil
}

func (f *fakeGroupRepo) Delete(ctx context.Context, groupID int64) (bool, error) {
	for i, group := range f.groups {
		if group.ID == groupID {
			f.groups = append(f.groups[:i], f.groups[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroupRepo) HasPayments(ctx context.Context, groupID int64) (bool, error) {
	return f.hasPayments[groupID], nil
}

func date(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func mustMonth(t *testing.T, value string) month.Month {
	t.Helper()
	m, err := month.Parse(value)
	if err != nil {
		t.Fatalf("parse month %s: %v", value, err)
	}
	return m
}

func TestActiveForMonthWindow(t *testing.T) {
	group := Group{StartDate: date("2024-03-15"), EndDate: date("2024-08-10")}

	cases := []struct {
		month string
		want  bool
	}{
		{"2024-02", false},
		{"2024-03", true},
		{"2024-06", true},
		{"2024-08", true},
		{"2024-09", false},
	}
	for _, tc := range cases {
		if got := group.ActiveForMonth(mustMonth(t, tc.month)); got != tc.want {
			t.Fatalf("ActiveForMonth(%s) = %v, want %v", tc.month, got, tc.want)
		}
	}
}

func TestActiveForMonthWithoutDates(t *testing.T) {
	group := Group{}
	if !group.ActiveForMonth(mustMonth(t, "1999-01")) {
		t.Fatal("expected group without dates to be always active")
	}
}

func TestActiveForMonthOpenEnded(t *testing.T) {
	group := Group{StartDate: date("2024-03-01")}
	if group.ActiveForMonth(mustMonth(t, "2024-02")) {
		t.Fatal("expected inactive before start")
	}
	if !group.ActiveForMonth(mustMonth(t, "2030-12")) {
		t.Fatal("expected active with no end date")
	}
}

func TestCreateRejectsInvertedDateRange(t *testing.T) {
	svc := NewService(&fakeGroupRepo{})

	_, err := svc.Create(context.Background(), CreateGroupInput{
		Name:          "Group A",
		MonthlyAmount: decimal.NewFromInt(500),
		StartDate:     date("2024-08-01"),
		EndDate:       date("2024-03-01"),
	})
	if err != ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestListActiveForMonthFilters(t *testing.T) {
	repo := &fakeGroupRepo{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateGroupInput{
		Name:          "Spring",
		MonthlyAmount: decimal.NewFromInt(500),
		StartDate:     date("2024-03-01"),
		EndDate:       date("2024-05-31"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.Create(context.Background(), CreateGroupInput{
		Name:          "Open",
		MonthlyAmount: decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := svc.ListActiveForMonth(context.Background(), mustMonth(t, "2024-07"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(active) != 1 || active[0].Name != "Open" {
		t.Fatalf("expected only the open-ended group, got %+v", active)
	}
}

func TestDeleteBlockedWhilePaymentsExist(t *testing.T) {
	repo := &fakeGroupRepo{hasPayments: map[int64]bool{1: true}}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateGroupInput{
		Name:          "Group A",
		MonthlyAmount: decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), 1); err != ErrGroupHasPayments {
		t.Fatalf("expected ErrGroupHasPayments, got %v", err)
	}
}
