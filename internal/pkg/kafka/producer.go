package kafka

import (
	"axis6/internal/api/config"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Producer publishes domain events. Its method signatures match the
// publisher interfaces the services depend on, so the service layer
// never imports this package.
type Producer struct {
	producer     sarama.SyncProducer
	checkinTopic string
	userTopic    string
}

func NewProducer(cfg *config.Config) (*Producer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer:     producer,
		checkinTopic: cfg.CheckinEvents.Topic,
		userTopic:    cfg.UserEvents.Topic,
	}, nil
}

// PublishCheckin emits a checkin event keyed by user so one user's
// events stay ordered within a partition.
func (s *Producer) PublishCheckin(ctx context.Context, userID, categoryID uint64, date string, deleted bool) error {
	// Mark the day dirty first. The nightly rollup drains this set, so
	// a lost event still gets its aggregate repaired.
	dirtyMember := strconv.FormatUint(userID, 10) + ":" + date
	if err := redis.SAdd(ctx, consts.StatsDirtyKey, dirtyMember); err != nil {
		log.ErrorContext(ctx, "mark stats dirty failed", "member", dirtyMember, "err", err)
	}

	evt := &CheckinEvent{
		UserID:     userID,
		CategoryID: categoryID,
		Date:       date,
		Deleted:    deleted,
		OccurredAt: time.Now(),
	}
	return s.publish(ctx, s.checkinTopic, strconv.FormatUint(userID, 10), evt)
}

// PublishUser emits a user profile event.
func (s *Producer) PublishUser(ctx context.Context, userID uint64, deleted bool, version int64) error {
	evt := &UserEvent{
		UserID:  userID,
		Deleted: deleted,
		Version: version,
	}
	return s.publish(ctx, s.userTopic, strconv.FormatUint(userID, 10), evt)
}

func (s *Producer) publish(ctx context.Context, topic string, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		log.ErrorContext(ctx, "publish event failed", "topic", topic, "err", err)
		return err
	}

	log.InfoContext(ctx, "event published", "topic", topic, "partition", partition, "offset", offset)
	return nil
}

func (s *Producer) Close() error {
	return s.producer.Close()
}
