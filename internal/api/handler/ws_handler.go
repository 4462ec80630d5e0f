package handler

import (
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/redis"
	"axis6/internal/pkg/response"
	"axis6/internal/pkg/security"
	"axis6/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct{}

func NewWsHandler() *WsHandler {
	return &WsHandler{}
}

// Connect upgrades to a websocket and streams the caller's personal
// channel: new messages and read receipts pushed by the chat service.
// Browsers cannot set headers on websocket requests, so the token
// rides in the query string.
func (s *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("ws auth failed", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("ws upgrade failed", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	channel := consts.ChatUserChannelKey + strconv.FormatUint(userID, 10)
	pubsub := redis.Subscribe(context.Background(), channel)
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("ws connected", "user_id", userID)

	stopChan := make(chan struct{})

	// Read loop only watches for the client hanging up.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	redisCh := pubsub.Channel()
	for {
		select {
		case msg := <-redisCh:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Error("ws push failed", "user_id", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("ws disconnected", "user_id", userID)
			return
		}
	}
}
