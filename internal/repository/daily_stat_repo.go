package repository

import (
	"axis6/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyStatRepo interface {
	SaveOrUpdateStat(ctx context.Context, stat *model.DailyStat) error
	GetStatsBy7Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error)
	GetStatsBy30Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error)
	GetStatByDate(ctx context.Context, userID uint64, date time.Time) (*model.DailyStat, error)
	DeleteStat(ctx context.Context, userID uint64, date time.Time) error
}

type dailyStatRepoImpl struct {
	db *gorm.DB
}

func NewDailyStatRepo(db *gorm.DB) DailyStatRepo {
	return &dailyStatRepoImpl{db: db}
}

func (s *dailyStatRepoImpl) SaveOrUpdateStat(ctx context.Context, stat *model.DailyStat) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "stat_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"categories_completed", "completion_rate", "mood_avg", "updated_at",
		}),
	}).Create(stat).Error
}

func (s *dailyStatRepoImpl) GetStatsBy7Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error) {
	return s.getStatsSince(ctx, userID, time.Now().AddDate(0, 0, -7))
}

func (s *dailyStatRepoImpl) GetStatsBy30Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error) {
	return s.getStatsSince(ctx, userID, time.Now().AddDate(0, 0, -30))
}

func (s *dailyStatRepoImpl) getStatsSince(ctx context.Context, userID uint64, since time.Time) ([]*model.DailyStat, error) {
	stats := make([]*model.DailyStat, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("stat_date >= ?", since).
		Order("stat_date ASC").
		Find(&stats)
	if result.Error != nil {
		return nil, result.Error
	}
	return stats, nil
}

func (s *dailyStatRepoImpl) GetStatByDate(ctx context.Context, userID uint64, date time.Time) (*model.DailyStat, error) {
	stat := &model.DailyStat{}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND stat_date = ?", userID, date).
		First(stat)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return stat, nil
}

func (s *dailyStatRepoImpl) DeleteStat(ctx context.Context, userID uint64, date time.Time) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND stat_date = ?", userID, date).
		Delete(&model.DailyStat{}).Error
}
