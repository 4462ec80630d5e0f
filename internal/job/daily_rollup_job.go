package job

import (
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/logger"
	"axis6/internal/pkg/redis"
	"axis6/internal/repository"
	"axis6/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DailyRollupJob drains the dirty set of user/day pairs and recomputes
// their aggregates, then re-walks active streaks so a missed day shows
// up as zero without waiting for the next checkin.
type DailyRollupJob struct {
	statsSvc  service.StatsService
	streakSvc service.StreakService
	userRepo  repository.UserRepo
}

func NewDailyRollupJob(
	statsSvc service.StatsService,
	streakSvc service.StreakService,
	userRepo repository.UserRepo,
) *DailyRollupJob {
	return &DailyRollupJob{
		statsSvc:  statsSvc,
		streakSvc: streakSvc,
		userRepo:  userRepo,
	}
}

func (s *DailyRollupJob) Run() {
	traceID := "job-rollup-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	newUUID := uuid.NewString()
	lock, err := redis.TryLock(ctx, consts.RollupLock, newUUID, time.Minute*30, 1)
	if err != nil || !lock {
		return
	}
	defer redis.UnLock(ctx, consts.RollupLock, newUUID)

	s.repairDirtyStats(ctx)
	s.resetMissedStreaks(ctx)
}

func (s *DailyRollupJob) repairDirtyStats(ctx context.Context) {
	processingKey := consts.StatsDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.StatsDirtyKey, processingKey); err != nil {
		// Empty dirty set, nothing to repair.
		return
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "err", err)
		return
	}

	repaired := 0
	for _, member := range members {
		userIDStr, date, ok := strings.Cut(member, ":")
		if !ok {
			log.WarnContext(ctx, "malformed dirty member", "member", member)
			continue
		}
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			log.WarnContext(ctx, "malformed dirty member", "member", member)
			continue
		}
		if err := s.statsSvc.RecalculateDay(ctx, userID, date); err != nil {
			log.ErrorContext(ctx, "recalculate day error", "member", member, "err", err)
			continue
		}
		repaired++
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete processing set error", "err", err)
	}

	log.InfoContext(ctx, "stats rollup done", "dirty", len(members), "repaired", repaired)
}

func (s *DailyRollupJob) resetMissedStreaks(ctx context.Context) {
	userIDs, err := s.streakSvc.GetActiveStreakUserIds(ctx)
	if err != nil {
		log.ErrorContext(ctx, "get active streak users error", "err", err)
		return
	}

	for _, userID := range userIDs {
		profile, err := s.userRepo.GetProfileByUserId(ctx, userID)
		if err != nil || profile == nil {
			continue
		}
		if err := s.streakSvc.RecomputeUserStreaks(ctx, userID, profile.Timezone); err != nil {
			log.ErrorContext(ctx, "recompute streaks error", "user_id", userID, "err", err)
		}
	}

	log.InfoContext(ctx, "streak sweep done", "users", len(userIDs))
}
