package schedule

import "context"

type Repository interface {
	// Create returns ErrAssignmentExists when the (group, member, month) triple
	// is already assigned.
	Create(ctx context.Context, assignment *Assignment) error
	Delete(ctx context.Context, assignmentID int64) (bool, error)
	ListByGroup(ctx context.Context, groupID int64) ([]Assignment, error)
	ListByMember(ctx context.Context, memberID int64) ([]Assignment, error)
	ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]Assignment, error)
	ListMemberIDsByGroup(ctx context.Context, groupID int64) ([]int64, error)
}
