package activity

import (
	"context"

	activitydomain "kasmoni-app-go/internal/domain/activity"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *activitydomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) List(ctx context.Context, filter activitydomain.ListFilter) ([]activitydomain.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&activitydomain.Entry{})

	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entries []activitydomain.Entry
	if err := query.Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
