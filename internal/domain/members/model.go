package members

import "time"

type Member struct {
	ID            int64     `gorm:"primaryKey"`
	FirstName     string    `gorm:"not null"`
	LastName      string    `gorm:"not null"`
	Phone         string    `gorm:"size:32"`
	Email         string    `gorm:"size:254"`
	BankID        *int64    `gorm:"index"`
	AccountNumber string    `gorm:"size:34"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

type CreateMemberInput struct {
	FirstName     string
	LastName      string
	Phone         string
	Email         string
	BankID        *int64
	AccountNumber string
}

type UpdateMemberInput struct {
	ID            int64
	FirstName     string
	LastName      string
	Phone         string
	Email         string
	BankID        *int64
	AccountNumber string
}

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
