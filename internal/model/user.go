package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Email     *string `gorm:"type:varchar(254);uniqueIndex:idx_email"`
	Password  *string `gorm:"type:varchar(255)"`
	Role      string  `gorm:"type:varchar(16);not null;default:USER"`
	IsBan     bool    `gorm:"not null;default:false"`
	IsDelete  bool    `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile UserProfile `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
