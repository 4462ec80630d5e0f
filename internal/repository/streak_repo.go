package repository

import (
	"axis6/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakRepo interface {
	GetStreaksByUser(ctx context.Context, userID uint64) ([]*model.Streak, error)
	SaveStreak(ctx context.Context, streak *model.Streak) error
	GetActiveStreakUserIds(ctx context.Context) ([]uint64, error)
}

type streakRepoImpl struct {
	db *gorm.DB
}

func NewStreakRepo(db *gorm.DB) StreakRepo {
	return &streakRepoImpl{db: db}
}

func (s *streakRepoImpl) GetStreaksByUser(ctx context.Context, userID uint64) ([]*model.Streak, error) {
	streaks := make([]*model.Streak, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category_id ASC").
		Find(&streaks)
	if result.Error != nil {
		return nil, result.Error
	}
	return streaks, nil
}

// SaveStreak upserts on (user, category).
func (s *streakRepoImpl) SaveStreak(ctx context.Context, streak *model.Streak) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_streak", "longest_streak", "last_checkin_date", "updated_at",
		}),
	}).Create(streak).Error
}

// GetActiveStreakUserIds lists users that still have a running streak.
// The nightly rollup resets the ones that missed a day.
func (s *streakRepoImpl) GetActiveStreakUserIds(ctx context.Context) ([]uint64, error) {
	ids := make([]uint64, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Streak{}).
		Where("current_streak > 0").
		Distinct().
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}
