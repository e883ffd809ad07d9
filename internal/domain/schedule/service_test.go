package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

type fakeScheduleRepo struct {
	assignments []Assignment
	nextID      int64
}

func (f *fakeScheduleRepo) Create(ctx context.Context, assignment *Assignment) error {
	for _, existing := range f.assignments {
		if existing.GroupID == assignment.GroupID &&
			existing.MemberID == assignment.MemberID &&
			existing.MonthDate == assignment.MonthDate {
			return ErrAssignmentExists
		}
	}
	f.nextID++
	assignment.ID = f.nextID
	f.assignments = append(f.assignments, *assignment)
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, assignmentID int64) (bool, error) {
	for i, assignment := range f.assignments {
		if assignment.ID == assignmentID {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleRepo) ListByGroup(ctx context.Context, groupID int64) ([]Assignment, error) {
	var result []Assignment
	for _, assignment := range f.assignments {
		if assignment.GroupID == groupID {
			result = append(result, assignment)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) ListByMember(ctx context.Context, memberID int64) ([]Assignment, error) {
	var result []Assignment
	for _, assignment := range f.assignments {
		if assignment.MemberID == memberID {
			result = append(result, assignment)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]Assignment, error) {
	var result []Assignment
	for _, assignment := range f.assignments {
		if assignment.GroupID == groupID && assignment.MemberID == memberID {
			result = append(result, assignment)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) ListMemberIDsByGroup(ctx context.Context, groupID int64) ([]int64, error) {
	seen := make(map[int64]struct{})
	var result []int64
	for _, assignment := range f.assignments {
		if assignment.GroupID != groupID {
			continue
		}
		if _, ok := seen[assignment.MemberID]; ok {
			continue
		}
		seen[assignment.MemberID] = struct{}{}
		result = append(result, assignment.MemberID)
	}
	return result, nil
}

type fakeGroupGetter struct {
	group *groups.Group
}

func (f *fakeGroupGetter) Get(ctx context.Context, groupID int64) (*groups.Group, error) {
	if f.group == nil || f.group.ID != groupID {
		return nil, groups.ErrGroupNotFound
	}
	copied := *f.group
	return &copied, nil
}

func testGroup() *groups.Group {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return &groups.Group{
		ID:            1,
		Name:          "Ronde A",
		MonthlyAmount: decimal.NewFromInt(250),
		StartDate:     &start,
		EndDate:       &end,
	}
}

func mustMonth(t *testing.T, value string) month.Month {
	t.Helper()
	m, err := month.Parse(value)
	if err != nil {
		t.Fatalf("parse month %s: %v", value, err)
	}
	return m
}

func TestAssignWithinWindow(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeGroupGetter{group: testGroup()})

	assignment, err := svc.Assign(context.Background(), AssignInput{
		GroupID:   1,
		MemberID:  7,
		MonthDate: mustMonth(t, "2024-06"),
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assignment.ID == 0 {
		t.Fatal("expected assignment id to be set")
	}
}

func TestAssignRejectsMonthOutsideWindow(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeGroupGetter{group: testGroup()})

	_, err := svc.Assign(context.Background(), AssignInput{
		GroupID:   1,
		MemberID:  7,
		MonthDate: mustMonth(t, "2025-01"),
	})
	if err == nil {
		t.Fatal("expected error for month outside the group window")
	}
}

func TestAssignRejectsDuplicateTriple(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeGroupGetter{group: testGroup()})

	input := AssignInput{GroupID: 1, MemberID: 7, MonthDate: mustMonth(t, "2024-06")}
	if _, err := svc.Assign(context.Background(), input); err != nil {
		t.Fatalf("first assign: %v", err)
	}

	_, err := svc.Assign(context.Background(), input)
	if !errors.Is(err, ErrAssignmentExists) {
		t.Fatalf("expected ErrAssignmentExists, got %v", err)
	}
}

func TestAssignedMonths(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, &fakeGroupGetter{group: testGroup()})

	for _, value := range []string{"2024-03", "2024-06"} {
		if _, err := svc.Assign(context.Background(), AssignInput{
			GroupID:   1,
			MemberID:  7,
			MonthDate: mustMonth(t, value),
		}); err != nil {
			t.Fatalf("assign %s: %v", value, err)
		}
	}

	months, err := svc.AssignedMonths(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("assigned months: %v", err)
	}
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].String() != "2024-03" || months[1].String() != "2024-06" {
		t.Fatalf("unexpected months %v", months)
	}
}

func TestUnassignMissing(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeGroupGetter{group: testGroup()})

	if err := svc.Unassign(context.Background(), 99); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
}
