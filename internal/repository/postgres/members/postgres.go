package members

import (
	"context"
	"errors"

	membersdomain "kasmoni-app-go/internal/domain/members"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, member *membersdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) Update(ctx context.Context, member *membersdomain.Member) error {
	return r.db.WithContext(ctx).
		Model(&membersdomain.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"first_name":     member.FirstName,
			"last_name":      member.LastName,
			"phone":          member.Phone,
			"email":          member.Email,
			"bank_id":        member.BankID,
			"account_number": member.AccountNumber,
			"updated_at":     member.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, memberID int64) (*membersdomain.Member, error) {
	var member membersdomain.Member
	if err := r.db.WithContext(ctx).First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membersdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter membersdomain.ListFilter) ([]membersdomain.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&membersdomain.Member{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern,
		)
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

	var members []membersdomain.Member
	if err := query.Order("last_name asc, first_name asc").Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, memberID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&membersdomain.Member{}, "id = ?", memberID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) HasAssignments(ctx context.Context, memberID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("group_members").
		Where("member_id = ?", memberID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) HasPayments(ctx context.Context, memberID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("payments").
		Where("member_id = ?", memberID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
