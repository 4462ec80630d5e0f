package model

import "time"

// TimeBlock is a planned slot of a day dedicated to one axis.
// StartMinute counts from local midnight.
type TimeBlock struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"not null;index:idx_block_user_date" json:"userId"`
	CategoryID  uint64    `gorm:"not null" json:"categoryId"`
	BlockDate   time.Time `gorm:"type:date;not null;index:idx_block_user_date" json:"blockDate"`
	StartMinute int       `gorm:"not null" json:"startMinute"`
	DurationMin int       `gorm:"not null" json:"durationMin"`
	Activity    string    `gorm:"type:varchar(120);not null" json:"activity"`
	Note        *string   `gorm:"type:varchar(500)" json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (TimeBlock) TableName() string {
	return "time_blocks"
}
