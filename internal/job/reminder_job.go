package job

import (
	"axis6/internal/api/config"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/logger"
	"axis6/internal/pkg/notify"
	"axis6/internal/pkg/redis"
	"axis6/internal/pkg/util"
	"axis6/internal/repository"
	"axis6/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReminderJob runs hourly and nudges users with an active streak who
// have not completed all six axes once their local evening hour
// arrives. One reminder per user per local day.
type ReminderJob struct {
	checkinSvc  service.CheckinService
	categorySvc service.CategoryService
	streakSvc   service.StreakService
	userRepo    repository.UserRepo
	notifier    *notify.WebhookNotifier
	cfg         config.ReminderConfig
}

func NewReminderJob(
	checkinSvc service.CheckinService,
	categorySvc service.CategoryService,
	streakSvc service.StreakService,
	userRepo repository.UserRepo,
	notifier *notify.WebhookNotifier,
	cfg config.ReminderConfig,
) *ReminderJob {
	return &ReminderJob{
		checkinSvc:  checkinSvc,
		categorySvc: categorySvc,
		streakSvc:   streakSvc,
		userRepo:    userRepo,
		notifier:    notifier,
		cfg:         cfg,
	}
}

func (s *ReminderJob) Run() {
	if !s.cfg.Enabled {
		return
	}

	traceID := "job-reminder-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	userIDs, err := s.streakSvc.GetActiveStreakUserIds(ctx)
	if err != nil {
		log.ErrorContext(ctx, "get active streak users error", "err", err)
		return
	}

	categories, err := s.categorySvc.ListCategories(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list categories error", "err", err)
		return
	}
	slugByID := make(map[uint64]string, len(categories))
	for _, c := range categories {
		slugByID[c.ID] = c.Slug
	}

	sent := 0
	for _, userID := range userIDs {
		profile, err := s.userRepo.GetProfileByUserId(ctx, userID)
		if err != nil || profile == nil {
			continue
		}

		localNow := time.Now().In(util.LoadLocation(profile.Timezone))
		if localNow.Hour() < s.cfg.LocalHour {
			continue
		}
		localDate := util.FormatDate(localNow)

		sentKey := consts.ReminderSentKey + strconv.FormatUint(userID, 10) + ":" + localDate
		if v, err := redis.GetValue(ctx, sentKey); err != nil || v != "" {
			continue
		}

		checkins, err := s.checkinSvc.GetDay(ctx, userID, "")
		if err != nil {
			log.ErrorContext(ctx, "load today checkins error", "user_id", userID, "err", err)
			continue
		}

		done := make(map[uint64]struct{}, len(checkins))
		for _, c := range checkins {
			done[c.CategoryID] = struct{}{}
		}
		missing := make([]string, 0, len(categories))
		for _, c := range categories {
			if _, ok := done[c.ID]; !ok {
				missing = append(missing, slugByID[c.ID])
			}
		}
		if len(missing) == 0 {
			continue
		}

		if err := s.notifier.SendReminder(ctx, userID, profile.DisplayName, missing, localDate); err != nil {
			continue
		}
		_ = redis.SetWithExpiration(ctx, sentKey, true, time.Hour*26)
		sent++
	}

	log.InfoContext(ctx, "reminder sweep done", "candidates", len(userIDs), "sent", sent)
}
