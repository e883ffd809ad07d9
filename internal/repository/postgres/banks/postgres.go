package banks

import (
	"context"
	"errors"

	banksdomain "kasmoni-app-go/internal/domain/banks"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, bank *banksdomain.Bank) error {
	err := r.db.WithContext(ctx).Create(bank).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return banksdomain.ErrBankNameTaken
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, bankID int64) (*banksdomain.Bank, error) {
	var bank banksdomain.Bank
	if err := r.db.WithContext(ctx).First(&bank, "id = ?", bankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, banksdomain.ErrBankNotFound
		}
		return nil, err
	}
	return &bank, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]banksdomain.Bank, error) {
	var banks []banksdomain.Bank
	if err := r.db.WithContext(ctx).Order("name asc").Find(&banks).Error; err != nil {
		return nil, err
	}
	return banks, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, bankID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&banksdomain.Bank{}, "id = ?", bankID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) HasPayments(ctx context.Context, bankID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("payments").
		Where("sender_bank_id = ? OR receiver_bank_id = ?", bankID, bankID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
