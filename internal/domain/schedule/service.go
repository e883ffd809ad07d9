package schedule

import (
	"context"
	"fmt"

	"kasmoni-app-go/internal/domain/groups"
	"kasmoni-app-go/internal/domain/month"
)

type GroupGetter interface {
	Get(ctx context.Context, groupID int64) (*groups.Group, error)
}

type Service struct {
	repo   Repository
	groups GroupGetter
}

func NewService(repo Repository, groups GroupGetter) *Service {
	return &Service{repo: repo, groups: groups}
}

// Assign schedules a member for a month of the group's cycle. The month must
// fall inside the group's activity window.
func (s *Service) Assign(ctx context.Context, input AssignInput) (*Assignment, error) {
	if input.MonthDate.IsZero() {
		return nil, fmt.Errorf("month is required")
	}

	group, err := s.groups.Get(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.ActiveForMonth(input.MonthDate) {
		return nil, fmt.Errorf("group is not active for %s", input.MonthDate)
	}

	assignment := Assignment{
		GroupID:   input.GroupID,
		MemberID:  input.MemberID,
		MonthDate: input.MonthDate,
	}

	if err := s.repo.Create(ctx, &assignment); err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (s *Service) Unassign(ctx context.Context, assignmentID int64) error {
	deleted, err := s.repo.Delete(ctx, assignmentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAssignmentNotFound
	}
	return nil
}

func (s *Service) ListByGroup(ctx context.Context, groupID int64) ([]Assignment, error) {
	return s.repo.ListByGroup(ctx, groupID)
}

func (s *Service) ListByMember(ctx context.Context, memberID int64) ([]Assignment, error) {
	return s.repo.ListByMember(ctx, memberID)
}

func (s *Service) ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]Assignment, error) {
	return s.repo.ListByGroupAndMember(ctx, groupID, memberID)
}

func (s *Service) MemberIDsOfGroup(ctx context.Context, groupID int64) ([]int64, error) {
	return s.repo.ListMemberIDsByGroup(ctx, groupID)
}

// AssignedMonths returns the months a member is scheduled for in a group.
func (s *Service) AssignedMonths(ctx context.Context, groupID, memberID int64) ([]month.Month, error) {
	assignments, err := s.repo.ListByGroupAndMember(ctx, groupID, memberID)
	if err != nil {
		return nil, err
	}

	months := make([]month.Month, 0, len(assignments))
	for _, assignment := range assignments {
		months = append(months, assignment.MonthDate)
	}
	return months, nil
}
