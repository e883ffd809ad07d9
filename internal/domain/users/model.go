package users

import "time"

const (
	RoleAdministrator = "administrator"
	RoleViewer        = "viewer"
)

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null;column:password_hash"`
	Role         string    `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (u User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}
