package members

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, input CreateMemberInput) (*Member, error) {
	if err := validateNames(input.FirstName, input.LastName); err != nil {
		return nil, err
	}

	member := Member{
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Phone:         strings.TrimSpace(input.Phone),
		Email:         strings.TrimSpace(input.Email),
		BankID:        input.BankID,
		AccountNumber: strings.TrimSpace(input.AccountNumber),
	}

	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *Service) Update(ctx context.Context, input UpdateMemberInput) (*Member, error) {
	if err := validateNames(input.FirstName, input.LastName); err != nil {
		return nil, err
	}

	member, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	member.FirstName = strings.TrimSpace(input.FirstName)
	member.LastName = strings.TrimSpace(input.LastName)
	member.Phone = strings.TrimSpace(input.Phone)
	member.Email = strings.TrimSpace(input.Email)
	member.BankID = input.BankID
	member.AccountNumber = strings.TrimSpace(input.AccountNumber)
	member.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *Service) Get(ctx context.Context, memberID int64) (*Member, error) {
	return s.repo.GetByID(ctx, memberID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Member, int64, error) {
	return s.repo.List(ctx, filter)
}

// Delete refuses to remove a member that assignments or payments still reference.
func (s *Service) Delete(ctx context.Context, memberID int64) error {
	assigned, err := s.repo.HasAssignments(ctx, memberID)
	if err != nil {
		return err
	}
	if assigned {
		return ErrMemberInUse
	}

	paid, err := s.repo.HasPayments(ctx, memberID)
	if err != nil {
		return err
	}
	if paid {
		return ErrMemberInUse
	}

	deleted, err := s.repo.Delete(ctx, memberID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}

func validateNames(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return fmt.Errorf("first name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("last name is required")
	}
	return nil
}
