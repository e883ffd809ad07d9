package schedule

import (
	"context"
	"errors"

	scheduledomain "kasmoni-app-go/internal/domain/schedule"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, assignment *scheduledomain.Assignment) error {
	err := r.db.WithContext(ctx).Create(assignment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return scheduledomain.ErrAssignmentExists
	}
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, assignmentID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&scheduledomain.Assignment{}, "id = ?", assignmentID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID int64) ([]scheduledomain.Assignment, error) {
	var assignments []scheduledomain.Assignment
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("month_date asc, member_id asc").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *PostgresRepository) ListByMember(ctx context.Context, memberID int64) ([]scheduledomain.Assignment, error) {
	var assignments []scheduledomain.Assignment
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("month_date asc, group_id asc").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *PostgresRepository) ListByGroupAndMember(ctx context.Context, groupID, memberID int64) ([]scheduledomain.Assignment, error) {
	var assignments []scheduledomain.Assignment
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		Order("month_date asc").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *PostgresRepository) ListMemberIDsByGroup(ctx context.Context, groupID int64) ([]int64, error) {
	var memberIDs []int64
	if err := r.db.WithContext(ctx).
		Model(&scheduledomain.Assignment{}).
		Where("group_id = ?", groupID).
		Distinct("member_id").
		Order("member_id asc").
		Pluck("member_id", &memberIDs).Error; err != nil {
		return nil, err
	}
	return memberIDs, nil
}
