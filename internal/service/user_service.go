package service

import (
	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/es"
	"axis6/internal/pkg/minio"
	"axis6/internal/pkg/redis"
	"axis6/internal/pkg/security"
	"axis6/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

// UserEventPublisher pushes profile changes toward the search index.
type UserEventPublisher interface {
	PublishUser(ctx context.Context, userID uint64, deleted bool, version int64) error
}

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, id uint64, userDTO *dto.UserDTO) error
	UpdatePassword(ctx context.Context, id uint64, pwDTO *dto.ChangePasswordDTO) error
	UpdateAvatar(ctx context.Context, id uint64, objectName string) error
	SearchUsers(ctx context.Context, query string, size int) ([]*dto.SearchUserDTO, error)
	BanUser(ctx context.Context, id uint64) error
	UnBanUser(ctx context.Context, id uint64) error
	CancelUser(ctx context.Context, id uint64) error
}

type UserServiceImpl struct {
	userRepo  repository.UserRepo
	userES    es.UserRepo
	publisher UserEventPublisher
}

func NewUserService(userRepo repository.UserRepo, userES es.UserRepo, publisher UserEventPublisher) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		userES:    userES,
		publisher: publisher,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	displayName := regDTO.DisplayName
	if displayName == "" {
		displayName = regDTO.Email
	}
	timezone := consts.DefaultTimezone
	if regDTO.Timezone != nil && *regDTO.Timezone != "" {
		// Reject garbage timezones at the door; everything downstream
		// trusts this column.
		if _, err := time.LoadLocation(*regDTO.Timezone); err != nil {
			return ErrParamInvalid
		}
		timezone = *regDTO.Timezone
	}

	user := &model.User{
		Email:    &regDTO.Email,
		Password: &passwordHash,
		Role:     consts.RoleUser,
	}
	profile := &model.UserProfile{
		DisplayName: displayName,
		AvatarURL:   consts.DefaultAvatarURL,
		Timezone:    timezone,
	}

	if err := s.userRepo.CreateUser(ctx, user, profile); err != nil {
		return err
	}

	s.publishProfile(ctx, user.ID, false)
	return nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	if credDTO.Email == nil || *credDTO.Email == "" || credDTO.Password == nil {
		return "", ErrMissingLoginCredentials
	}
	user, err := s.userRepo.GetUserByEmail(ctx, *credDTO.Email)
	if err != nil {
		return "", err
	}
	if user == nil || user.IsDelete {
		return "", ErrUserNotFound
	}
	if user.IsBan {
		return "", ErrUserBan
	}
	if user.Password == nil {
		return "", ErrPasswordIncorrect
	}
	if err := security.CheckPasswordHash(*credDTO.Password, *user.Password); err != nil {
		return "", ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, []string{user.Role})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Logout blacklists the token signature until it would have expired
// anyway.
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, time.Hour*24)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDelete {
		return nil, ErrUserNotFound
	}

	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	if err := copier.Copy(userDTO, &user.Profile); err != nil {
		return nil, err
	}
	userDTO.UserID = &user.ID
	url := minio.GetPublicURL(user.Profile.AvatarURL)
	userDTO.AvatarURL = &url
	return userDTO, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, userDTO *dto.UserDTO) error {
	profile, err := s.userRepo.GetProfileByUserId(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrUserNotFound
	}

	if userDTO.Timezone != nil && *userDTO.Timezone != "" {
		if _, err := time.LoadLocation(*userDTO.Timezone); err != nil {
			return ErrParamInvalid
		}
	}

	if err := copier.CopyWithOption(profile, userDTO, copier.Option{IgnoreEmpty: true}); err != nil {
		return err
	}
	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return err
	}

	s.publishProfile(ctx, id, false)
	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id uint64, pwDTO *dto.ChangePasswordDTO) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Password == nil {
		return ErrPasswordIncorrect
	}
	if err := security.CheckPasswordHash(*pwDTO.OldPassword, *user.Password); err != nil {
		return ErrPasswordIncorrect
	}
	passwordHash, err := security.HashPassword(*pwDTO.NewPassword)
	if err != nil {
		return err
	}
	user.Password = &passwordHash
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, id uint64, objectName string) error {
	profile, err := s.userRepo.GetProfileByUserId(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrUserNotFound
	}
	profile.AvatarURL = objectName
	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return err
	}

	s.publishProfile(ctx, id, false)
	return nil
}

func (s *UserServiceImpl) SearchUsers(ctx context.Context, query string, size int) ([]*dto.SearchUserDTO, error) {
	if query == "" {
		return nil, ErrParamInvalid
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	hits, err := s.userES.SearchUsers(ctx, query, size)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SearchUserDTO, 0, len(hits))
	for _, hit := range hits {
		result = append(result, &dto.SearchUserDTO{
			UserID:      hit.ID,
			DisplayName: hit.DisplayName,
			Bio:         hit.Bio,
			AvatarURL:   minio.GetPublicURL(hit.AvatarURL),
		})
	}
	return result, nil
}

func (s *UserServiceImpl) BanUser(ctx context.Context, id uint64) error {
	return s.changeUserIsBanStatus(ctx, id, true)
}

func (s *UserServiceImpl) UnBanUser(ctx context.Context, id uint64) error {
	return s.changeUserIsBanStatus(ctx, id, false)
}

func (s *UserServiceImpl) CancelUser(ctx context.Context, id uint64) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.publishProfile(ctx, id, true)
	return nil
}

func (s *UserServiceImpl) changeUserIsBanStatus(ctx context.Context, id uint64, isBan bool) error {
	affected, err := s.userRepo.UpdateUserIsBan(ctx, id, isBan)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// publishProfile emits a user event versioned by wall clock so stale
// index writes lose.
func (s *UserServiceImpl) publishProfile(ctx context.Context, id uint64, deleted bool) {
	version := time.Now().UnixMilli()
	if err := s.publisher.PublishUser(ctx, id, deleted, version); err != nil {
		log.ErrorContext(ctx, "publish user event failed", "user_id", id, "err", err)
	}
}
