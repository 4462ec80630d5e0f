package service

import (
	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/util"
	"axis6/internal/repository"
	"context"
)

type TimeBlockService interface {
	CreateTimeBlock(ctx context.Context, userID uint64, req *dto.TimeBlockReq) (*model.TimeBlock, error)
	GetDay(ctx context.Context, userID uint64, date string) ([]*model.TimeBlock, error)
	UpdateTimeBlock(ctx context.Context, userID, blockID uint64, req *dto.TimeBlockReq) (*model.TimeBlock, error)
	DeleteTimeBlock(ctx context.Context, userID, blockID uint64) error
}

type timeBlockServiceImpl struct {
	timeBlockRepo repository.TimeBlockRepo
	categoryRepo  repository.CategoryRepo
}

func NewTimeBlockService(timeBlockRepo repository.TimeBlockRepo, categoryRepo repository.CategoryRepo) TimeBlockService {
	return &timeBlockServiceImpl{
		timeBlockRepo: timeBlockRepo,
		categoryRepo:  categoryRepo,
	}
}

func (s *timeBlockServiceImpl) CreateTimeBlock(ctx context.Context, userID uint64, req *dto.TimeBlockReq) (*model.TimeBlock, error) {
	block, err := s.buildBlock(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.timeBlockRepo.CreateTimeBlock(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *timeBlockServiceImpl) GetDay(ctx context.Context, userID uint64, date string) ([]*model.TimeBlock, error) {
	day, err := util.ParseDate(date, "")
	if err != nil {
		return nil, ErrParamInvalid
	}
	return s.timeBlockRepo.GetTimeBlocksByDay(ctx, userID, dateOnly(day))
}

func (s *timeBlockServiceImpl) UpdateTimeBlock(ctx context.Context, userID, blockID uint64, req *dto.TimeBlockReq) (*model.TimeBlock, error) {
	existing, err := s.timeBlockRepo.GetTimeBlockById(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.UserID != userID {
		return nil, ErrTimeBlockNotFound
	}

	block, err := s.buildBlock(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	block.ID = blockID
	if err := s.timeBlockRepo.UpdateTimeBlock(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *timeBlockServiceImpl) DeleteTimeBlock(ctx context.Context, userID, blockID uint64) error {
	existing, err := s.timeBlockRepo.GetTimeBlockById(ctx, blockID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrTimeBlockNotFound
	}
	return s.timeBlockRepo.DeleteTimeBlock(ctx, blockID)
}

func (s *timeBlockServiceImpl) buildBlock(ctx context.Context, userID uint64, req *dto.TimeBlockReq) (*model.TimeBlock, error) {
	category, err := s.categoryRepo.GetCategoryById(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.StartMinute < 0 || req.StartMinute > 1439 ||
		req.DurationMin <= 0 || req.StartMinute+req.DurationMin > 1440 {
		return nil, ErrTimeBlockInvalidRange
	}

	day, err := util.ParseDate(req.Date, "")
	if err != nil {
		return nil, ErrParamInvalid
	}

	return &model.TimeBlock{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		BlockDate:   dateOnly(day),
		StartMinute: req.StartMinute,
		DurationMin: req.DurationMin,
		Activity:    req.Activity,
		Note:        req.Note,
	}, nil
}
