package kafka

import (
	"axis6/internal/pkg/es"
	"axis6/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// UserHandler consumes user events and mirrors profiles into the
// search index.
type UserHandler struct {
	userESRepo es.UserRepo
	userDBRepo repository.UserRepo
}

func NewUserHandler(userESRepo es.UserRepo, userDBRepo repository.UserRepo) *UserHandler {
	return &UserHandler{
		userESRepo: userESRepo,
		userDBRepo: userDBRepo,
	}
}

func (s *UserHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer setup")
	return nil
}

func (s *UserHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer cleanup")
	return nil
}

func (s *UserHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-user consume claim end")
	return nil
}

func (s *UserHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt UserEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		log.Error("unmarshal user event error", "err", err)
		return nil
	}

	if evt.Deleted {
		return s.userESRepo.DeleteUser(ctx, evt.UserID)
	}

	profile, err := s.userDBRepo.GetProfileByUserId(ctx, evt.UserID)
	if err != nil {
		return errors.Wrapf(err, "load profile %d", evt.UserID)
	}
	if profile == nil {
		// Profile vanished between event and consumption.
		return s.userESRepo.DeleteUser(ctx, evt.UserID)
	}

	doc := &es.UserES{
		ID:          profile.UserID,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		AvatarURL:   profile.AvatarURL,
	}
	return s.userESRepo.IndexUser(ctx, doc, evt.Version)
}
