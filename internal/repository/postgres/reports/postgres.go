package reports

import (
	"context"

	"kasmoni-app-go/internal/domain/month"
	reportsdomain "kasmoni-app-go/internal/domain/reports"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CountMembers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("members").Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountGroups(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("groups").Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountPayments(ctx context.Context, m month.Month) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("payments").
		Where("payment_month = ?", m).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) MethodTotals(ctx context.Context, m month.Month) ([]reportsdomain.MethodTotal, error) {
	var totals []reportsdomain.MethodTotal
	err := r.db.WithContext(ctx).
		Table("payments").
		Select("payment_method as method, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("payment_month = ?", m).
		Group("payment_method").
		Order("payment_method asc").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *PostgresRepository) StatusTotals(ctx context.Context, m month.Month) ([]reportsdomain.StatusTotal, error) {
	var totals []reportsdomain.StatusTotal
	err := r.db.WithContext(ctx).
		Table("payments").
		Select("status, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("payment_month = ?", m).
		Group("status").
		Order("status asc").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *PostgresRepository) FinesTotal(ctx context.Context, m month.Month) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Table("payments").
		Where("payment_month = ?", m).
		Select("COALESCE(SUM(fine_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *PostgresRepository) PaymentLog(ctx context.Context, filter reportsdomain.LogFilter) ([]reportsdomain.PaymentLogEntry, int64, error) {
	query := r.db.WithContext(ctx).
		Table("payments").
		Joins("JOIN members ON members.id = payments.member_id").
		Joins("JOIN groups ON groups.id = payments.group_id")

	if filter.From != nil {
		query = query.Where("payments.payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payments.payment_date <= ?", *filter.To)
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

	var entries []reportsdomain.PaymentLogEntry
	err := query.
		Select("payments.id as payment_id, payments.payment_date, " +
			"members.first_name || ' ' || members.last_name as member_name, " +
			"groups.name as group_name, payments.amount, " +
			"payments.payment_method as method, payments.status").
		Order("payments.payment_date desc, payments.id desc").
		Scan(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
