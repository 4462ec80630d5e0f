package dto

// StreakDTO is one axis counter.
type StreakDTO struct {
	CategoryID      uint64  `json:"category_id"`
	CurrentStreak   int     `json:"current_streak"`
	LongestStreak   int     `json:"longest_streak"`
	LastCheckinDate *string `json:"last_checkin_date,omitempty"`
}
