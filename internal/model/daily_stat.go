package model

import "time"

// DailyStat is the per-day dashboard aggregate. It is recomputed from
// checkin events and repaired by the nightly rollup, never written by
// request handlers directly.
type DailyStat struct {
	ID                  uint64    `gorm:"primaryKey" json:"id"`
	UserID              uint64    `gorm:"not null;uniqueIndex:idx_user_stat_date" json:"userId"`
	StatDate            time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_stat_date" json:"statDate"`
	CategoriesCompleted int       `gorm:"not null;default:0" json:"categoriesCompleted"`
	CompletionRate      float64   `gorm:"not null;default:0" json:"completionRate"`
	MoodAvg             float64   `gorm:"not null;default:0" json:"moodAvg"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}
