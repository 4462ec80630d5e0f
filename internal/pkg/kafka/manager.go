package kafka

import (
	"axis6/internal/api/config"
	"axis6/internal/pkg/es"
	"axis6/internal/repository"
	"axis6/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager owns every Kafka consumer group of the process.
type ConsumerManager struct {
	checkinConsumer sarama.ConsumerGroup
	checkinHandler  sarama.ConsumerGroupHandler

	userConsumer sarama.ConsumerGroup
	userHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(
	cfg *config.Config,
	statsSvc service.StatsService,
	userESRepo es.UserRepo,
	userDBRepo repository.UserRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	checkinConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.CheckinEvents.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	checkinHandler := NewStatsHandler(statsSvc)

	userConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.UserEvents.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	userHandler := NewUserHandler(userESRepo, userDBRepo)

	return &ConsumerManager{
		checkinConsumer: checkinConsumer,
		checkinHandler:  checkinHandler,
		userConsumer:    userConsumer,
		userHandler:     userHandler,
	}, nil
}

// Start runs every consumer until ctx is cancelled.
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.CheckinEvents.Topic
		log.Info("Checkin consumer started", "topic", topic)
		for {
			if err := m.checkinConsumer.Consume(ctx, []string{topic}, m.checkinHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.UserEvents.Topic
		log.Info("User consumer started", "topic", topic)
		for {
			if err := m.userConsumer.Consume(ctx, []string{topic}, m.userHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.checkinConsumer.Close(); err != nil {
		log.Error("Failed to close checkin consumer", "err", err)
	}
	if err := m.userConsumer.Close(); err != nil {
		log.Error("Failed to close user consumer", "err", err)
	}

	return nil
}
