package model

import "time"

// Streak is the consecutive-day counter for one user/axis pair,
// derived from checkin history and maintained on every write.
type Streak struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	UserID          uint64     `gorm:"not null;uniqueIndex:idx_user_category" json:"userId"`
	CategoryID      uint64     `gorm:"not null;uniqueIndex:idx_user_category" json:"categoryId"`
	CurrentStreak   int        `gorm:"not null;default:0" json:"currentStreak"`
	LongestStreak   int        `gorm:"not null;default:0" json:"longestStreak"`
	LastCheckinDate *time.Time `gorm:"type:date" json:"lastCheckinDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Streak) TableName() string {
	return "streaks"
}
