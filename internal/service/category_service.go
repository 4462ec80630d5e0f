package service

import (
	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/redis"
	"axis6/internal/repository"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, id uint64, updDTO *dto.UpdateCategoryDTO) error
	SeedDefaults(ctx context.Context) error
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	cached, err := redis.GetValue(ctx, consts.CategoryListKey)
	if err != nil {
		return nil, err
	}
	if cached != "" {
		categories := make([]*model.Category, 0, consts.CategoryCount)
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(categories); err == nil {
		_ = redis.SetWithExpiration(ctx, consts.CategoryListKey, string(data), time.Hour)
	}
	return categories, nil
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id uint64, updDTO *dto.UpdateCategoryDTO) error {
	category, err := s.categoryRepo.GetCategoryById(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	if err := copier.CopyWithOption(category, updDTO, copier.Option{IgnoreEmpty: true}); err != nil {
		return err
	}
	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return err
	}

	_ = redis.DeleteKey(ctx, consts.CategoryListKey)
	return nil
}

// SeedDefaults inserts the six axes on a fresh database. Existing
// slugs are left untouched so admin edits survive restarts.
func (s *categoryServiceImpl) SeedDefaults(ctx context.Context) error {
	defaults := []*model.Category{
		{Slug: "physical", Name: "Physical", Color: "#A6C26F", Icon: "activity", Position: 0},
		{Slug: "mental", Name: "Mental", Color: "#365D63", Icon: "brain", Position: 1},
		{Slug: "emotional", Name: "Emotional", Color: "#D36C50", Icon: "heart", Position: 2},
		{Slug: "social", Name: "Social", Color: "#6F3D56", Icon: "users", Position: 3},
		{Slug: "spiritual", Name: "Spiritual", Color: "#2C3E50", Icon: "sparkles", Position: 4},
		{Slug: "material", Name: "Material", Color: "#C85729", Icon: "briefcase", Position: 5},
	}
	return s.categoryRepo.SeedCategories(ctx, defaults)
}
