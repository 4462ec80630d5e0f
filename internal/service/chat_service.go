package service

import (
	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/mongo"
	"axis6/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sync"
	"time"
)

// ChatPublisher pushes realtime payloads toward a user's personal
// channel; connected websockets are subscribed to it.
type ChatPublisher interface {
	PublishToUser(ctx context.Context, userID uint64, payload any) error
}

type ChatService interface {
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	GetOrCreateConversation(ctx context.Context, userID, targetUserID uint64) (uint64, error)
	GetChatHistory(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	SyncMessages(ctx context.Context, userID uint64, convID uint64, sinceSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	GetConversationList(ctx context.Context, userID uint64) (*dto.ConversationListDTO, error)
	MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error
	Close()
}

type chatServiceImpl struct {
	convRepo    repository.ConversationRepo
	messageRepo mongo.MessageRepo
	userRepo    repository.UserRepo
	publisher   ChatPublisher
	retryChan   chan *mongo.Message
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

// NewChatService starts the calibration workers that re-save messages
// Mongo rejected on the hot path.
func NewChatService(convRepo repository.ConversationRepo, messageRepo mongo.MessageRepo, userRepo repository.UserRepo, publisher ChatPublisher) ChatService {
	s := &chatServiceImpl{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		retryChan:   make(chan *mongo.Message, 2048),
		stopChan:    make(chan struct{}),
	}

	workerCount := 5
	s.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go s.calibrationWorker()
	}

	return s
}

// SendMessage sequences the message in Postgres, stores the detail in
// Mongo, and fans it out to the receiver's channel. The Postgres seq
// is the source of truth; a failed Mongo write goes to the retry
// workers instead of failing the send.
func (s *chatServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	convID := req.ConversationID
	targetID := req.TargetUserID

	if convID == 0 {
		if targetID == 0 {
			return nil, ErrParamInvalid
		}
		id, err := s.GetOrCreateConversation(ctx, senderID, targetID)
		if err != nil {
			return nil, err
		}
		convID = id
	} else {
		conv, err := s.convRepo.GetConversation(ctx, convID)
		if err != nil {
			return nil, err
		}
		if conv == nil {
			return nil, ErrConversationNotFound
		}
		isMember, err := s.convRepo.IsMember(ctx, convID, senderID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrNotConversationMember
		}
		if conv.PeerKey != nil {
			targetID, _ = parsePeerID(*conv.PeerKey, senderID)
		}
	}

	newSeq, err := s.convRepo.IncrMaxSeq(ctx, convID, req.Content, int8(req.MsgType), senderID)
	if err != nil {
		return nil, err
	}

	msgModel := &mongo.Message{
		ConversationID: convID,
		SenderID:       senderID,
		MsgType:        req.MsgType,
		Content:        req.Content,
		Seq:            newSeq,
		CreatedAt:      time.Now(),
	}

	writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.messageRepo.SaveMessage(writeCtx, msgModel); err != nil {
		select {
		case s.retryChan <- msgModel:
		default:
		}
	}

	messageDTO := toMessageDTO(msgModel)
	if targetID != 0 {
		if err := s.publisher.PublishToUser(context.Background(), targetID, messageDTO); err != nil {
			log.Error("fan out message failed", "target", targetID, "err", err)
		}
	}

	return messageDTO, nil
}

// GetOrCreateConversation deduplicates direct chats by the sorted
// user-id pair.
func (s *chatServiceImpl) GetOrCreateConversation(ctx context.Context, userID, targetUserID uint64) (uint64, error) {
	if userID == targetUserID {
		return 0, ErrChatSelf
	}

	peerKey := buildPeerKey(userID, targetUserID)
	conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey)
	if err != nil {
		return 0, err
	}
	if conv != nil {
		return conv.ID, nil
	}

	newConv := &model.Conversation{
		Type:          1,
		PeerKey:       &peerKey,
		LastMessageAt: time.Now(),
	}
	members := []*model.ConversationMember{
		{UserID: userID, JoinedAt: time.Now()},
		{UserID: targetUserID, JoinedAt: time.Now()},
	}

	if err := s.convRepo.CreateConversation(ctx, newConv, members); err != nil {
		return 0, err
	}
	return newConv.ID, nil
}

// GetChatHistory pages backwards through Mongo. When the newest page
// is missing the head message (a lost Mongo write), the head is looked
// up by seq first; if Mongo truly lost it, a stub built from the
// Postgres preview fields fills the gap.
func (s *chatServiceImpl) GetChatHistory(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return nil, UnauthorizedError
	}

	models, err := s.messageRepo.GetHistory(ctx, convID, lastSeq, pageSize)
	if err != nil {
		return nil, err
	}

	if lastSeq == 0 {
		conv, err := s.convRepo.GetConversation(ctx, convID)
		if err == nil && conv != nil {
			hasGap := (len(models) == 0 && conv.MaxMsgSeq > 0) || (len(models) > 0 && models[0].Seq < conv.MaxMsgSeq)
			if hasGap {
				head := &dto.MessageDTO{
					ConversationID: conv.ID,
					Content:        conv.LastMsgContent,
					MsgType:        int(conv.LastMsgType),
					SenderID:       conv.LastSenderID,
					Seq:            conv.MaxMsgSeq,
					CreatedAt:      conv.LastMessageAt,
				}
				// The retry workers may have landed the write by now.
				if real, err := s.messageRepo.GetMessageBySeq(ctx, convID, conv.MaxMsgSeq); err == nil && real != nil {
					head = toMessageDTO(real)
				}
				res := []*dto.MessageDTO{head}
				for _, m := range models {
					res = append(res, toMessageDTO(m))
				}
				return res, nil
			}
		}
	}

	res := make([]*dto.MessageDTO, 0, len(models))
	for _, m := range models {
		res = append(res, toMessageDTO(m))
	}
	return res, nil
}

func (s *chatServiceImpl) SyncMessages(ctx context.Context, userID uint64, convID uint64, sinceSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return nil, UnauthorizedError
	}

	models, err := s.messageRepo.SyncMessages(ctx, convID, sinceSeq, pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MessageDTO, 0, len(models))
	for _, m := range models {
		res = append(res, toMessageDTO(m))
	}
	return res, nil
}

// GetConversationList builds the inbox: one row per conversation,
// direct chats decorated with the peer's profile, plus the global
// unread badge.
func (s *chatServiceImpl) GetConversationList(ctx context.Context, userID uint64) (*dto.ConversationListDTO, error) {
	members, err := s.convRepo.GetUserConversationMemList(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.ConversationDTO, 0, len(members))
	peerIDs := make([]uint64, 0, len(members))
	for _, m := range members {
		d := &dto.ConversationDTO{
			ConversationID: m.ConversationID,
			Type:           m.Conversation.Type,
			Title:          m.Conversation.Title,
			LastMsgContent: m.Conversation.LastMsgContent,
			LastMsgType:    m.Conversation.LastMsgType,
			LastSenderID:   m.Conversation.LastSenderID,
			LastMessageAt:  m.Conversation.LastMessageAt,
			UnreadCount:    m.UnreadCount,
			IsMuted:        m.IsMuted,
			IsPinned:       m.IsPinned,
		}

		if m.Conversation.Type == 1 && m.Conversation.PeerKey != nil {
			peerID, _ := parsePeerID(*m.Conversation.PeerKey, userID)
			d.PeerID = peerID
			if peerID != 0 {
				peerIDs = append(peerIDs, peerID)
			}
		}
		rows = append(rows, d)
	}

	if len(peerIDs) > 0 {
		profiles, err := s.userRepo.GetProfilesByUserIds(ctx, peerIDs)
		if err != nil {
			return nil, err
		}
		byID := make(map[uint64]*model.UserProfile, len(profiles))
		for _, p := range profiles {
			byID[p.UserID] = p
		}
		for _, d := range rows {
			if p, ok := byID[d.PeerID]; ok {
				d.PeerName = p.DisplayName
				d.PeerAvatar = p.AvatarURL
			}
		}
	}

	totalUnread, err := s.convRepo.GetTotalUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ConversationListDTO{Conversations: rows, TotalUnread: totalUnread}, nil
}

// MarkAsRead clamps the client's claimed sequence to the conversation
// head and pushes a receipt to the peer.
func (s *chatServiceImpl) MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return UnauthorizedError
	}

	conv, err := s.convRepo.GetConversation(ctx, convID)
	if err != nil {
		return err
	}
	if conv == nil {
		return ErrConversationNotFound
	}

	targetSeq := seq
	if targetSeq > conv.MaxMsgSeq {
		targetSeq = conv.MaxMsgSeq
	}

	if err := s.convRepo.UpdateReadSeq(ctx, convID, userID, targetSeq); err != nil {
		return err
	}

	if conv.PeerKey == nil {
		return nil
	}
	peerID, err := parsePeerID(*conv.PeerKey, userID)
	if err != nil {
		return err
	}
	go func() {
		receipt := &dto.ReadReceiptDTO{
			ConversationID: convID,
			UserID:         userID,
			ReadSeq:        targetSeq,
			Type:           "READ_RECEIPT",
		}
		pubCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.publisher.PublishToUser(pubCtx, peerID, receipt); err != nil {
			log.Error("fan out read receipt failed", "peer", peerID, "err", err)
		}
	}()

	return nil
}

func (s *chatServiceImpl) Close() {
	close(s.stopChan)
	s.wg.Wait()
	log.Info("ChatService shut down gracefully")
}

func (s *chatServiceImpl) calibrationWorker() {
	defer s.wg.Done()
	for {
		select {
		case msg := <-s.retryChan:
			backoff := time.Second
			for i := 0; i < 3; i++ {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				err := s.messageRepo.SaveMessage(ctx, msg)
				cancel()
				if err == nil {
					break
				}
				time.Sleep(backoff)
				backoff *= 2
			}
		case <-s.stopChan:
			return
		}
	}
}

func buildPeerKey(a, b uint64) string {
	if a < b {
		return fmt.Sprintf("%d_%d", a, b)
	}
	return fmt.Sprintf("%d_%d", b, a)
}

func parsePeerID(peerKey string, currentUserID uint64) (uint64, error) {
	var u1, u2 uint64
	if _, err := fmt.Sscanf(peerKey, "%d_%d", &u1, &u2); err != nil {
		return 0, err
	}
	if u1 == currentUserID {
		return u2, nil
	}
	return u1, nil
}

func toMessageDTO(m *mongo.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID: m.ID, ConversationID: m.ConversationID, SenderID: m.SenderID,
		MsgType: m.MsgType, Content: m.Content,
		Seq: m.Seq, CreatedAt: m.CreatedAt,
	}
}
