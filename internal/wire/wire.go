package wire

import (
	"axis6/internal/api"
	"axis6/internal/api/config"
	"axis6/internal/api/handler"
	"axis6/internal/job"
	"axis6/internal/pkg/cron"
	"axis6/internal/pkg/es"
	"axis6/internal/pkg/kafka"
	"axis6/internal/pkg/mongo"
	"axis6/internal/pkg/notify"
	"axis6/internal/pkg/redis"
	"axis6/internal/repository"
	"axis6/internal/service"

	"github.com/gin-gonic/gin"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer holds every top-level component the process
// runs.
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	CategorySvc  service.CategoryService
	ChatSvc      service.ChatService
	Producer     *kafka.Producer
}

func BuildApplication(db *gorm.DB, mongoDB *mongodrv.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	checkinRepo := repository.NewCheckinRepo(db)
	streakRepo := repository.NewStreakRepo(db)
	dailyStatRepo := repository.NewDailyStatRepo(db)
	timeBlockRepo := repository.NewTimeBlockRepo(db)
	convRepo := repository.NewConversationRepo(db)

	messageRepo := mongo.NewMessageRepo(mongoDB)
	userESRepo := es.NewUserRepo()

	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, err
	}
	chatPublisher := redis.NewUserChannelPublisher()

	userService := service.NewUserService(userRepo, userESRepo, producer)
	categoryService := service.NewCategoryService(categoryRepo)
	streakService := service.NewStreakService(streakRepo, checkinRepo)
	statsService := service.NewStatsService(dailyStatRepo, checkinRepo)
	checkinService := service.NewCheckinService(checkinRepo, categoryRepo, userRepo, streakService, producer)
	timeBlockService := service.NewTimeBlockService(timeBlockRepo, categoryRepo)
	chatService := service.NewChatService(convRepo, messageRepo, userRepo, chatPublisher)

	handlers := &api.HandlersGroup{
		UserHandler:      handler.NewUserHandler(userService),
		CategoryHandler:  handler.NewCategoryHandler(categoryService),
		CheckinHandler:   handler.NewCheckinHandler(checkinService),
		StreakHandler:    handler.NewStreakHandler(streakService),
		AnalyticsHandler: handler.NewAnalyticsHandler(statsService),
		TimeBlockHandler: handler.NewTimeBlockHandler(timeBlockService),
		ChatHandler:      handler.NewChatHandler(chatService),
		WSHandler:        handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, statsService, userESRepo, userRepo)
	if err != nil {
		return nil, err
	}

	notifier := notify.NewWebhookNotifier(cfg.Reminder)
	rollupJob := job.NewDailyRollupJob(statsService, streakService, userRepo)
	reminderJob := job.NewReminderJob(checkinService, categoryService, streakService, userRepo, notifier, cfg.Reminder)
	cronMgr := cron.NewCronManager(rollupJob, reminderJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		CategorySvc:  categoryService,
		ChatSvc:      chatService,
		Producer:     producer,
	}, nil
}
