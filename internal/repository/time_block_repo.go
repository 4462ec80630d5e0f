package repository

import (
	"axis6/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type TimeBlockRepo interface {
	CreateTimeBlock(ctx context.Context, block *model.TimeBlock) error
	GetTimeBlockById(ctx context.Context, id uint64) (*model.TimeBlock, error)
	GetTimeBlocksByDay(ctx context.Context, userID uint64, date time.Time) ([]*model.TimeBlock, error)
	UpdateTimeBlock(ctx context.Context, block *model.TimeBlock) error
	DeleteTimeBlock(ctx context.Context, id uint64) error
}

type timeBlockRepoImpl struct {
	db *gorm.DB
}

func NewTimeBlockRepo(db *gorm.DB) TimeBlockRepo {
	return &timeBlockRepoImpl{db: db}
}

func (s *timeBlockRepoImpl) CreateTimeBlock(ctx context.Context, block *model.TimeBlock) error {
	return s.db.WithContext(ctx).Create(block).Error
}

func (s *timeBlockRepoImpl) GetTimeBlockById(ctx context.Context, id uint64) (*model.TimeBlock, error) {
	block := &model.TimeBlock{}
	result := s.db.WithContext(ctx).First(block, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return block, nil
}

func (s *timeBlockRepoImpl) GetTimeBlocksByDay(ctx context.Context, userID uint64, date time.Time) ([]*model.TimeBlock, error) {
	blocks := make([]*model.TimeBlock, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND block_date = ?", userID, date).
		Order("start_minute ASC").
		Find(&blocks)
	if result.Error != nil {
		return nil, result.Error
	}
	return blocks, nil
}

func (s *timeBlockRepoImpl) UpdateTimeBlock(ctx context.Context, block *model.TimeBlock) error {
	return s.db.WithContext(ctx).
		Model(&model.TimeBlock{}).
		Where("id = ?", block.ID).
		Select("category_id", "block_date", "start_minute", "duration_min", "activity", "note").
		Updates(block).Error
}

func (s *timeBlockRepoImpl) DeleteTimeBlock(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.TimeBlock{}, id).Error
}
