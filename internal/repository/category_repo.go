package repository

import (
	"axis6/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategoryById(ctx context.Context, id uint64) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	SeedCategories(ctx context.Context, categories []*model.Category) error
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &categoryRepoImpl{db: db}
}

func (s *categoryRepoImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	result := s.db.WithContext(ctx).
		Order("position ASC").
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (s *categoryRepoImpl) GetCategoryById(ctx context.Context, id uint64) (*model.Category, error) {
	category := &model.Category{}
	result := s.db.WithContext(ctx).First(category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return category, nil
}

func (s *categoryRepoImpl) UpdateCategory(ctx context.Context, category *model.Category) error {
	result := s.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", category.ID).
		Select("name", "color", "icon", "position").
		Updates(category)
	return result.Error
}

// SeedCategories inserts the six axes, leaving existing rows alone so
// admin customizations survive restarts.
func (s *categoryRepoImpl) SeedCategories(ctx context.Context, categories []*model.Category) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&categories).Error
}
