package activity

import "time"

// Entry is one line of the administrative audit trail.
type Entry struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	Actor      string    `gorm:"not null"`
	Action     string    `gorm:"not null"`
	EntityType string    `gorm:"not null;index;column:entity_type"`
	EntityID   string    `gorm:"not null;column:entity_id"`
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (Entry) TableName() string {
	return "activity_log"
}

type RecordInput struct {
	Actor      string
	Action     string
	EntityType string
	EntityID   string
	Detail     string
}

type ListFilter struct {
	EntityType string
	Limit      int
	Offset     int
}
