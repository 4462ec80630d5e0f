package model

import "time"

// Category is one of the six wellness axes. The set is fixed and
// seeded at startup; admins may only adjust presentation fields.
type Category struct {
	ID        uint64 `gorm:"primaryKey"`
	Slug      string `gorm:"type:varchar(32);not null;uniqueIndex:idx_category_slug"`
	Name      string `gorm:"type:varchar(50);not null"`
	Color     string `gorm:"type:varchar(7);not null"`
	Icon      string `gorm:"type:varchar(32);not null"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Category) TableName() string {
	return "categories"
}
