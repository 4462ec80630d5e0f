package model

import "time"

// UserProfile holds the public-facing part of an account. Timezone
// defines where the user's day boundary falls for checkins and streaks.
type UserProfile struct {
	ID          uint64  `gorm:"primaryKey"`
	UserID      uint64  `gorm:"not null;uniqueIndex:idx_profile_user"`
	DisplayName string  `gorm:"type:varchar(50);not null"`
	AvatarURL   string  `gorm:"type:varchar(255);not null;default:default_avatar.png"`
	Bio         *string `gorm:"type:varchar(200)"`
	Timezone    string  `gorm:"type:varchar(64);not null;default:UTC"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
