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
)

type StreakService interface {
	GetStreaks(ctx context.Context, userID uint64) ([]*model.Streak, error)
	RecomputeStreak(ctx context.Context, userID, categoryID uint64, tzName string) (*model.Streak, error)
	RecomputeUserStreaks(ctx context.Context, userID uint64, tzName string) error
	GetActiveStreakUserIds(ctx context.Context) ([]uint64, error)
}

type streakServiceImpl struct {
	streakRepo  repository.StreakRepo
	checkinRepo repository.CheckinRepo
}

func NewStreakService(streakRepo repository.StreakRepo, checkinRepo repository.CheckinRepo) StreakService {
	return &streakServiceImpl{
		streakRepo:  streakRepo,
		checkinRepo: checkinRepo,
	}
}

func (s *streakServiceImpl) GetStreaks(ctx context.Context, userID uint64) ([]*model.Streak, error) {
	key := consts.StreakOverviewKey + strconv.FormatUint(userID, 10)
	cached, err := redis.GetValue(ctx, key)
	if err != nil {
		return nil, err
	}
	if cached != "" {
		streaks := make([]*model.Streak, 0)
		if err := json.Unmarshal([]byte(cached), &streaks); err == nil {
			return streaks, nil
		}
	}

	streaks, err := s.streakRepo.GetStreaksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(streaks); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(data), time.Minute*10)
	}
	return streaks, nil
}

// RecomputeStreak rebuilds one user/axis counter from the full checkin
// history. Running it after every write keeps backfilled and deleted
// checkins consistent with the counters.
func (s *streakServiceImpl) RecomputeStreak(ctx context.Context, userID, categoryID uint64, tzName string) (*model.Streak, error) {
	dates, err := s.checkinRepo.GetCheckinDates(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	today := dateOnly(util.LocalToday(tzName))
	current, longest := computeStreak(dates, today)

	streak := &model.Streak{
		UserID:        userID,
		CategoryID:    categoryID,
		CurrentStreak: current,
		LongestStreak: longest,
	}
	if len(dates) > 0 {
		last := dateOnly(dates[0])
		streak.LastCheckinDate = &last
	}

	if err := s.streakRepo.SaveStreak(ctx, streak); err != nil {
		return nil, err
	}

	_ = redis.DeleteKey(ctx, consts.StreakOverviewKey+strconv.FormatUint(userID, 10))
	return streak, nil
}

// RecomputeUserStreaks refreshes every axis that currently has a
// positive counter. The nightly rollup uses it to zero out streaks
// whose day was missed.
func (s *streakServiceImpl) RecomputeUserStreaks(ctx context.Context, userID uint64, tzName string) error {
	streaks, err := s.streakRepo.GetStreaksByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, streak := range streaks {
		if streak.CurrentStreak == 0 {
			continue
		}
		if _, err := s.RecomputeStreak(ctx, userID, streak.CategoryID, tzName); err != nil {
			return err
		}
	}
	return nil
}

func (s *streakServiceImpl) GetActiveStreakUserIds(ctx context.Context) ([]uint64, error) {
	return s.streakRepo.GetActiveStreakUserIds(ctx)
}

// computeStreak walks a newest-first list of unique checkin dates. The
// current run only counts when it reaches today or yesterday; older
// runs still feed the longest counter.
func computeStreak(dates []time.Time, today time.Time) (current int, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	run := 1
	firstRun := 1
	firstRunOpen := true
	for i := 1; i < len(dates); i++ {
		gap := daysBetween(dates[i], dates[i-1])
		if gap == 1 {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
			firstRunOpen = false
		}
		if firstRunOpen {
			firstRun = run
		}
	}
	if run > longest {
		longest = run
	}

	headGap := daysBetween(dates[0], today)
	if headGap <= 1 {
		current = firstRun
	}
	return current, longest
}

func daysBetween(earlier, later time.Time) int {
	return int(dateOnly(later).Sub(dateOnly(earlier)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
