package service

import (
	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/util"
	"axis6/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// ActivityPublisher fans a checkin mutation out to the async side so
// the aggregates catch up. Failures there never fail the request; the
// nightly rollup repairs whatever the pipeline missed.
type ActivityPublisher interface {
	PublishCheckin(ctx context.Context, userID, categoryID uint64, date string, deleted bool) error
}

type CheckinService interface {
	Checkin(ctx context.Context, userID uint64, req *dto.CheckinReq) (*model.Checkin, error)
	GetDay(ctx context.Context, userID uint64, date string) ([]*model.Checkin, error)
	GetRange(ctx context.Context, userID uint64, from, to string) ([]*model.Checkin, error)
	DeleteCheckin(ctx context.Context, userID, categoryID uint64, date string) error
}

type checkinServiceImpl struct {
	checkinRepo  repository.CheckinRepo
	categoryRepo repository.CategoryRepo
	userRepo     repository.UserRepo
	streakSvc    StreakService
	publisher    ActivityPublisher
}

func NewCheckinService(
	checkinRepo repository.CheckinRepo,
	categoryRepo repository.CategoryRepo,
	userRepo repository.UserRepo,
	streakSvc StreakService,
	publisher ActivityPublisher,
) CheckinService {
	return &checkinServiceImpl{
		checkinRepo:  checkinRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		streakSvc:    streakSvc,
		publisher:    publisher,
	}
}

// Checkin records one axis for one day. Re-checking the same day
// overwrites mood and note instead of failing. Past days may be
// backfilled; future days are rejected against the user's timezone.
func (s *checkinServiceImpl) Checkin(ctx context.Context, userID uint64, req *dto.CheckinReq) (*model.Checkin, error) {
	profile, err := s.userRepo.GetProfileByUserId(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	category, err := s.categoryRepo.GetCategoryById(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	mood := 0
	if req.Mood != nil {
		if *req.Mood < consts.MoodMin || *req.Mood > consts.MoodMax {
			return nil, ErrMoodOutOfRange
		}
		mood = *req.Mood
	}

	today := dateOnly(util.LocalToday(profile.Timezone))
	day := today
	if req.Date != nil && *req.Date != "" {
		parsed, err := util.ParseDate(*req.Date, "")
		if err != nil {
			return nil, ErrParamInvalid
		}
		day = dateOnly(parsed)
	}
	if day.After(today) {
		return nil, ErrCheckinFutureDate
	}

	checkin := &model.Checkin{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		CheckinDate: day,
		Mood:        mood,
		Note:        req.Note,
	}
	if err := s.checkinRepo.UpsertCheckin(ctx, checkin); err != nil {
		return nil, err
	}

	if _, err := s.streakSvc.RecomputeStreak(ctx, userID, req.CategoryID, profile.Timezone); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishCheckin(ctx, userID, req.CategoryID, util.FormatDate(day), false); err != nil {
		log.ErrorContext(ctx, "publish checkin failed", "user_id", userID, "err", err)
	}

	return checkin, nil
}

func (s *checkinServiceImpl) GetDay(ctx context.Context, userID uint64, date string) ([]*model.Checkin, error) {
	profile, err := s.userRepo.GetProfileByUserId(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}

	day := dateOnly(util.LocalToday(profile.Timezone))
	if date != "" {
		parsed, err := util.ParseDate(date, "")
		if err != nil {
			return nil, ErrParamInvalid
		}
		day = dateOnly(parsed)
	}
	return s.checkinRepo.GetCheckinsByDay(ctx, userID, day)
}

func (s *checkinServiceImpl) GetRange(ctx context.Context, userID uint64, from, to string) ([]*model.Checkin, error) {
	fromDay, err := util.ParseDate(from, "")
	if err != nil {
		return nil, ErrParamInvalid
	}
	toDay, err := util.ParseDate(to, "")
	if err != nil {
		return nil, ErrParamInvalid
	}
	if toDay.Before(fromDay) {
		return nil, ErrParamInvalid
	}
	// Cap the window so one request cannot sweep years of rows.
	if toDay.Sub(fromDay) > 366*24*time.Hour {
		return nil, ErrParamInvalid
	}
	return s.checkinRepo.GetCheckinsByRange(ctx, userID, dateOnly(fromDay), dateOnly(toDay))
}

func (s *checkinServiceImpl) DeleteCheckin(ctx context.Context, userID, categoryID uint64, date string) error {
	profile, err := s.userRepo.GetProfileByUserId(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrUserNotFound
	}

	parsed, err := util.ParseDate(date, "")
	if err != nil {
		return ErrParamInvalid
	}
	day := dateOnly(parsed)

	affected, err := s.checkinRepo.DeleteCheckin(ctx, userID, categoryID, day)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCheckinNotFound
	}

	if _, err := s.streakSvc.RecomputeStreak(ctx, userID, categoryID, profile.Timezone); err != nil {
		return err
	}

	if err := s.publisher.PublishCheckin(ctx, userID, categoryID, util.FormatDate(day), true); err != nil {
		log.ErrorContext(ctx, "publish checkin delete failed", "user_id", userID, "err", err)
	}
	return nil
}
