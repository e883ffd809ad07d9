package banks

import "time"

type Bank struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex"`
	ShortCode string    `gorm:"size:16"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type CreateBankInput struct {
	Name      string
	ShortCode string
}
