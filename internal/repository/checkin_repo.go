package repository

import (
	"axis6/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckinRepo interface {
	UpsertCheckin(ctx context.Context, checkin *model.Checkin) error
	GetCheckinsByDay(ctx context.Context, userID uint64, date time.Time) ([]*model.Checkin, error)
	GetCheckinsByRange(ctx context.Context, userID uint64, from, to time.Time) ([]*model.Checkin, error)
	GetCheckinDates(ctx context.Context, userID, categoryID uint64) ([]time.Time, error)
	DeleteCheckin(ctx context.Context, userID, categoryID uint64, date time.Time) (int64, error)
}

type checkinRepoImpl struct {
	db *gorm.DB
}

func NewCheckinRepo(db *gorm.DB) CheckinRepo {
	return &checkinRepoImpl{db: db}
}

// UpsertCheckin enforces the one-checkin-per-day rule at the database
// level: a conflict on (user, category, date) updates mood and note
// instead of inserting a duplicate row.
func (s *checkinRepoImpl) UpsertCheckin(ctx context.Context, checkin *model.Checkin) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "category_id"},
			{Name: "checkin_date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "note", "updated_at"}),
	}).Create(checkin).Error
}

func (s *checkinRepoImpl) GetCheckinsByDay(ctx context.Context, userID uint64, date time.Time) ([]*model.Checkin, error) {
	checkins := make([]*model.Checkin, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND checkin_date = ?", userID, date).
		Order("category_id ASC").
		Find(&checkins)
	if result.Error != nil {
		return nil, result.Error
	}
	return checkins, nil
}

func (s *checkinRepoImpl) GetCheckinsByRange(ctx context.Context, userID uint64, from, to time.Time) ([]*model.Checkin, error) {
	checkins := make([]*model.Checkin, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND checkin_date >= ? AND checkin_date <= ?", userID, from, to).
		Order("checkin_date ASC, category_id ASC").
		Find(&checkins)
	if result.Error != nil {
		return nil, result.Error
	}
	return checkins, nil
}

// GetCheckinDates returns the full date history for one user/axis,
// newest first. Streak recomputation walks this list.
func (s *checkinRepoImpl) GetCheckinDates(ctx context.Context, userID, categoryID uint64) ([]time.Time, error) {
	dates := make([]time.Time, 0)
	result := s.db.WithContext(ctx).
		Model(&model.Checkin{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Order("checkin_date DESC").
		Pluck("checkin_date", &dates)
	if result.Error != nil {
		return nil, result.Error
	}
	return dates, nil
}

func (s *checkinRepoImpl) DeleteCheckin(ctx context.Context, userID, categoryID uint64, date time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND checkin_date = ?", userID, categoryID, date).
		Delete(&model.Checkin{})
	return result.RowsAffected, result.Error
}
