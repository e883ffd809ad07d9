package groups

import (
	"context"
	"errors"

	groupsdomain "kasmoni-app-go/internal/domain/groups"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, group *groupsdomain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *PostgresRepository) Update(ctx context.Context, group *groupsdomain.Group) error {
	return r.db.WithContext(ctx).
		Model(&groupsdomain.Group{}).
		Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"name":           group.Name,
			"monthly_amount": group.MonthlyAmount,
			"start_date":     group.StartDate,
			"end_date":       group.EndDate,
			"updated_at":     group.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, groupID int64) (*groupsdomain.Group, error) {
	var group groupsdomain.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupsdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]groupsdomain.Group, error) {
	var groups []groupsdomain.Group
	if err := r.db.WithContext(ctx).Order("name asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, groupID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&groupsdomain.Group{}, "id = ?", groupID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) HasPayments(ctx context.Context, groupID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("payments").
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
