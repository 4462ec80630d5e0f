package model

import "time"

// Checkin records one completed axis for one day. The composite
// unique index is what makes daily checkins idempotent.
type Checkin struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_user_category_date" json:"userId"`
	CategoryID  uint64    `gorm:"not null;uniqueIndex:idx_user_category_date" json:"categoryId"`
	CheckinDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_category_date" json:"checkinDate"`
	Mood        int       `gorm:"not null;default:0" json:"mood"`
	Note        *string   `gorm:"type:varchar(500)" json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Checkin) TableName() string {
	return "checkins"
}
