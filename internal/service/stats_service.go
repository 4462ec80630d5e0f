package service

import (
	"axis6/internal/model"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/redis"
	"axis6/internal/pkg/util"
	"axis6/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type StatsService interface {
	RecalculateDay(ctx context.Context, userID uint64, date string) error
	GetStatByDate(ctx context.Context, userID uint64, date time.Time) (*model.DailyStat, error)
	GetStatsBy7Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error)
	GetStatsBy30Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error)
}

type statsServiceImpl struct {
	dailyStatRepo repository.DailyStatRepo
	checkinRepo   repository.CheckinRepo
}

func NewStatsService(dailyStatRepo repository.DailyStatRepo, checkinRepo repository.CheckinRepo) StatsService {
	return &statsServiceImpl{
		dailyStatRepo: dailyStatRepo,
		checkinRepo:   checkinRepo,
	}
}

// RecalculateDay rebuilds one user's aggregate for one day from the
// checkin rows. It runs on the consumer side of checkin events and in
// the nightly rollup, so it takes a distributed lock per user/day.
func (s *statsServiceImpl) RecalculateDay(ctx context.Context, userID uint64, date string) error {
	day, err := util.ParseDate(date, "")
	if err != nil {
		return err
	}

	lockKey := consts.DailyStatLock + strconv.FormatUint(userID, 10) + ":" + date
	newUUID, err := uuid.NewUUID()
	if err != nil {
		return err
	}
	lock, err := redis.TryLock(ctx, lockKey, newUUID.String(), time.Minute, 3)
	if err != nil {
		return err
	}
	if !lock {
		return UnExpectedError
	}
	defer redis.UnLock(ctx, lockKey, newUUID.String())

	checkins, err := s.checkinRepo.GetCheckinsByDay(ctx, userID, day)
	if err != nil {
		return err
	}

	if len(checkins) == 0 {
		if err := s.dailyStatRepo.DeleteStat(ctx, userID, day); err != nil {
			return err
		}
		s.invalidateCaches(ctx, userID)
		return nil
	}

	completed, rate, moodAvg := BuildDailyStat(checkins)
	stat := &model.DailyStat{
		UserID:              userID,
		StatDate:            day,
		CategoriesCompleted: completed,
		CompletionRate:      rate,
		MoodAvg:             moodAvg,
	}
	if err := s.dailyStatRepo.SaveOrUpdateStat(ctx, stat); err != nil {
		return err
	}

	s.invalidateCaches(ctx, userID)
	return nil
}

// BuildDailyStat reduces one day's checkins to the dashboard numbers.
// Mood 0 means "not recorded" and is excluded from the average.
func BuildDailyStat(checkins []*model.Checkin) (completed int, rate float64, moodAvg float64) {
	seen := make(map[uint64]struct{}, len(checkins))
	moodSum := 0
	moodCount := 0
	for _, c := range checkins {
		seen[c.CategoryID] = struct{}{}
		if c.Mood > 0 {
			moodSum += c.Mood
			moodCount++
		}
	}
	completed = len(seen)
	rate = float64(completed) / float64(consts.CategoryCount)
	if moodCount > 0 {
		moodAvg = float64(moodSum) / float64(moodCount)
	}
	return completed, rate, moodAvg
}

func (s *statsServiceImpl) GetStatByDate(ctx context.Context, userID uint64, date time.Time) (*model.DailyStat, error) {
	return s.dailyStatRepo.GetStatByDate(ctx, userID, date)
}

func (s *statsServiceImpl) GetStatsBy7Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error) {
	key := consts.DailyStats7DaysKey + strconv.FormatUint(userID, 10)
	return s.getStatsByDays(ctx, key, func() ([]*model.DailyStat, error) {
		return s.dailyStatRepo.GetStatsBy7Days(ctx, userID)
	})
}

func (s *statsServiceImpl) GetStatsBy30Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error) {
	key := consts.DailyStats30DaysKey + strconv.FormatUint(userID, 10)
	return s.getStatsByDays(ctx, key, func() ([]*model.DailyStat, error) {
		return s.dailyStatRepo.GetStatsBy30Days(ctx, userID)
	})
}

func (s *statsServiceImpl) getStatsByDays(
	ctx context.Context,
	key string,
	fetchFromDB func() ([]*model.DailyStat, error),
) ([]*model.DailyStat, error) {
	list, err := redis.GetList(ctx, key)
	if err != nil {
		return nil, err
	}

	if len(list) != 0 {
		stats := make([]*model.DailyStat, 0, len(list))
		for _, v := range list {
			var stat *model.DailyStat
			if err := json.Unmarshal([]byte(v), &stat); err != nil {
				return nil, err
			}
			stats = append(stats, stat)
		}
		return stats, nil
	}

	stats, err := fetchFromDB()
	if err != nil {
		return nil, err
	}

	s.cacheStats(ctx, key, stats)
	return stats, nil
}

func (s *statsServiceImpl) cacheStats(ctx context.Context, key string, stats []*model.DailyStat) {
	statJsons := make([]string, 0, len(stats))
	for _, v := range stats {
		statJson, err := json.Marshal(v)
		if err != nil {
			return
		}
		statJsons = append(statJsons, string(statJson))
	}

	// Expire 5 minutes before midnight so the windows roll over cleanly.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	expiration := time.Until(midnight) - time.Minute*5
	if expiration < 0 {
		return
	}

	_ = redis.SetListWithExpiration(ctx, key, statJsons, expiration)
}

func (s *statsServiceImpl) invalidateCaches(ctx context.Context, userID uint64) {
	id := strconv.FormatUint(userID, 10)
	_ = redis.DeleteKey(ctx, consts.DailyStats7DaysKey+id)
	_ = redis.DeleteKey(ctx, consts.DailyStats30DaysKey+id)
}
