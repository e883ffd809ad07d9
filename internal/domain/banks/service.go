package banks

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, input CreateBankInput) (*Bank, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	bank := Bank{
		Name:      name,
		ShortCode: strings.ToUpper(strings.TrimSpace(input.ShortCode)),
	}

	if err := s.repo.Create(ctx, &bank); err != nil {
		return nil, err
	}

	return &bank, nil
}

func (s *Service) Get(ctx context.Context, bankID int64) (*Bank, error) {
	return s.repo.GetByID(ctx, bankID)
}

func (s *Service) List(ctx context.Context) ([]Bank, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, bankID int64) error {
	inUse, err := s.repo.HasPayments(ctx, bankID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrBankInUse
	}

	deleted, err := s.repo.Delete(ctx, bankID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBankNotFound
	}
	return nil
}
