package kafka

import (
	"axis6/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// StatsHandler consumes checkin events and recomputes the affected
// day's aggregate.
type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

func (s *StatsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("checkin stats consumer setup")
	return nil
}

func (s *StatsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("checkin stats consumer cleanup")
	return nil
}

func (s *StatsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-checkin consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-checkin consume claim end")
	return nil
}

func (s *StatsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt CheckinEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		log.Error("unmarshal checkin event error", "err", err)
		// Poison messages are dropped rather than retried forever.
		return nil
	}

	if err := s.statsSvc.RecalculateDay(ctx, evt.UserID, evt.Date); err != nil {
		return errors.Wrapf(err, "recalculate stats for user %d date %s", evt.UserID, evt.Date)
	}
	return nil
}
