package repository

import (
	"axis6/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetProfileByUserId(ctx context.Context, id uint64) (*model.UserProfile, error)
	GetProfilesByUserIds(ctx context.Context, ids []uint64) ([]*model.UserProfile, error)
	CreateUser(ctx context.Context, user *model.User, profile *model.UserProfile) error
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, profile *model.UserProfile) error
	UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Preload("Profile").
		First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ?", email).
		First(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetProfileByUserId(ctx context.Context, id uint64) (*model.UserProfile, error) {
	profile := &model.UserProfile{}
	result := s.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return profile, nil
}

func (s *UserRepoImpl) GetProfilesByUserIds(ctx context.Context, ids []uint64) ([]*model.UserProfile, error) {
	profiles := make([]*model.UserProfile, 0)
	result := s.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User, profile *model.UserProfile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(user); result.Error != nil {
			return result.Error
		}

		profile.UserID = user.ID
		if result := tx.Create(profile); result.Error != nil {
			return result.Error
		}

		return nil
	})
}

func (s *UserRepoImpl) UpdateUser(ctx context.Context, user *model.User) error {
	result := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", user.ID).Updates(user)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (s *UserRepoImpl) UpdateProfile(ctx context.Context, profile *model.UserProfile) error {
	result := s.db.WithContext(ctx).Model(&model.UserProfile{}).Where("user_id = ?", profile.UserID).Updates(profile)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (s *UserRepoImpl) UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_ban", isBan)

	return result.RowsAffected, result.Error
}

// DeleteUser soft-deletes the account and scrubs credentials so the
// email can be reused.
func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	emailPlaceholder := fmt.Sprintf("deleted_%d_%d@invalid.local", id, time.Now().Unix())

	userUpdate := model.User{
		IsDelete: true,
		Email:    &emailPlaceholder,
		Password: nil,
	}

	profileUpdate := model.UserProfile{
		DisplayName: "Deleted account",
		Bio:         nil,
		AvatarURL:   "default_avatar.png",
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userFields := []string{"is_delete", "email", "password"}
		if result := tx.Model(&model.User{}).Where("id = ?", id).Select(userFields).Updates(userUpdate); result.Error != nil {
			return result.Error
		}

		profileFields := []string{"display_name", "bio", "avatar_url"}
		if result := tx.Model(&model.UserProfile{}).Where("user_id = ?", id).Select(profileFields).Updates(profileUpdate); result.Error != nil {
			return result.Error
		}

		return nil
	})
}
