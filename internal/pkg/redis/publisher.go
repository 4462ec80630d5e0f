package redis

import (
	"axis6/internal/pkg/consts"
	"context"
	"strconv"

	"github.com/goccy/go-json"
)

// UserChannelPublisher pushes payloads onto per-user pub/sub channels.
// Every websocket connection subscribes to its owner's channel.
type UserChannelPublisher struct{}

func NewUserChannelPublisher() *UserChannelPublisher {
	return &UserChannelPublisher{}
}

func (p *UserChannelPublisher) PublishToUser(ctx context.Context, userID uint64, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	channel := consts.ChatUserChannelKey + strconv.FormatUint(userID, 10)
	return Publish(ctx, channel, data)
}
