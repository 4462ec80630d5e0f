package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/mongo"
	"axis6/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeConvRepo struct {
	conversations map[uint64]*model.Conversation
	byPeerKey     map[string]*model.Conversation
	members       map[uint64][]uint64
	created       []*model.Conversation
	readSeqs      map[uint64]uint64
	nextSeq       uint64
	memList       []*model.ConversationMember
	totalUnread   int64
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		conversations: make(map[uint64]*model.Conversation),
		byPeerKey:     make(map[string]*model.Conversation),
		members:       make(map[uint64][]uint64),
		readSeqs:      make(map[uint64]uint64),
	}
}

func (f *fakeConvRepo) CreateConversation(ctx context.Context, conv *model.Conversation, members []*model.ConversationMember) error {
	conv.ID = uint64(len(f.conversations) + 1)
	f.conversations[conv.ID] = conv
	if conv.PeerKey != nil {
		f.byPeerKey[*conv.PeerKey] = conv
	}
	for _, m := range members {
		f.members[conv.ID] = append(f.members[conv.ID], m.UserID)
	}
	f.created = append(f.created, conv)
	return nil
}

func (f *fakeConvRepo) GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error) {
	return f.conversations[convID], nil
}

func (f *fakeConvRepo) GetConversationByPeerKey(ctx context.Context, peerKey string) (*model.Conversation, error) {
	return f.byPeerKey[peerKey], nil
}

func (f *fakeConvRepo) IsMember(ctx context.Context, convID uint64, userID uint64) (bool, error) {
	for _, id := range f.members[convID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConvRepo) UpdateReadSeq(ctx context.Context, convID, userID, seq uint64) error {
	f.readSeqs[userID] = seq
	return nil
}

func (f *fakeConvRepo) IncrMaxSeq(ctx context.Context, convID uint64, lastMsg string, msgType int8, senderID uint64) (uint64, error) {
	f.nextSeq++
	if conv, ok := f.conversations[convID]; ok {
		conv.MaxMsgSeq = f.nextSeq
		conv.LastMsgContent = lastMsg
		conv.LastSenderID = senderID
	}
	return f.nextSeq, nil
}

func (f *fakeConvRepo) GetUserConversationMemList(ctx context.Context, userID uint64) ([]*model.ConversationMember, error) {
	return f.memList, nil
}

func (f *fakeConvRepo) GetTotalUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return f.totalUnread, nil
}

type fakeMessageRepo struct {
	saved   []*mongo.Message
	saveErr error
	history []*mongo.Message
	bySeq   map[uint64]*mongo.Message
}

func (f *fakeMessageRepo) SaveMessage(ctx context.Context, msg *mongo.Message) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, msg)
	return nil
}

func (f *fakeMessageRepo) GetHistory(ctx context.Context, convID uint64, lastSeq uint64, pageSize int) ([]*mongo.Message, error) {
	return f.history, nil
}

func (f *fakeMessageRepo) SyncMessages(ctx context.Context, convID uint64, sinceSeq uint64, pageSize int) ([]*mongo.Message, error) {
	return f.history, nil
}

func (f *fakeMessageRepo) GetMessageBySeq(ctx context.Context, convID uint64, seq uint64) (*mongo.Message, error) {
	return f.bySeq[seq], nil
}

type fakeChatPublisher struct {
	payloads chan any
}

func newFakeChatPublisher() *fakeChatPublisher {
	return &fakeChatPublisher{payloads: make(chan any, 8)}
}

func (f *fakeChatPublisher) PublishToUser(ctx context.Context, userID uint64, payload any) error {
	f.payloads <- payload
	return nil
}

// newChatFixture wires the service without calibration workers so the
// retry queue can be inspected directly.
func newChatFixture() (*fakeConvRepo, *fakeMessageRepo, *fakeChatPublisher, *chatServiceImpl) {
	convRepo := newFakeConvRepo()
	messageRepo := &fakeMessageRepo{}
	publisher := newFakeChatPublisher()
	svc := &chatServiceImpl{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		userRepo:    &fakeUserRepo{profiles: make(map[uint64]*model.UserProfile)},
		publisher:   publisher,
		retryChan:   make(chan *mongo.Message, 8),
		stopChan:    make(chan struct{}),
	}
	return convRepo, messageRepo, publisher, svc
}

// The first direct message between two users has no conversation row
// yet; the lookup must come back empty (not as an error) so the room
// gets created lazily.
func TestGetOrCreateConversationFirstChat(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	convRepo := repository.NewConversationRepo(db)
	svc := &chatServiceImpl{
		convRepo:    convRepo,
		messageRepo: &fakeMessageRepo{},
		publisher:   newFakeChatPublisher(),
		retryChan:   make(chan *mongo.Message, 8),
		stopChan:    make(chan struct{}),
	}

	mock.ExpectQuery(`SELECT .* FROM "conversations" WHERE peer_key`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "conversations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "conversation_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "conversation_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	convID, err := svc.GetOrCreateConversation(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), convID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPeerKey(t *testing.T) {
	assert.Equal(t, "3_9", buildPeerKey(9, 3))
	assert.Equal(t, "3_9", buildPeerKey(3, 9))

	peer, err := parsePeerID("3_9", 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), peer)

	peer, err = parsePeerID("3_9", 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), peer)

	_, err = parsePeerID("garbage", 3)
	assert.Error(t, err)
}

func TestGetOrCreateConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("self chat rejected", func(t *testing.T) {
		_, _, _, svc := newChatFixture()
		_, err := svc.GetOrCreateConversation(ctx, 5, 5)
		assert.ErrorIs(t, err, ErrChatSelf)
	})

	t.Run("creates once then reuses", func(t *testing.T) {
		convRepo, _, _, svc := newChatFixture()

		first, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)
		require.Len(t, convRepo.created, 1)
		require.NotNil(t, convRepo.created[0].PeerKey)
		assert.Equal(t, "5_9", *convRepo.created[0].PeerKey)
		assert.Len(t, convRepo.members[first], 2)

		// Reversed argument order lands on the same conversation.
		second, err := svc.GetOrCreateConversation(ctx, 9, 5)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Len(t, convRepo.created, 1)
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("sequences and fans out", func(t *testing.T) {
		convRepo, messageRepo, publisher, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)

		msg, err := svc.SendMessage(ctx, 5, &dto.SendMessageReq{
			ConversationID: convID,
			MsgType:        1,
			Content:        "hello",
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), msg.Seq)
		assert.Equal(t, uint64(5), msg.SenderID)
		require.Len(t, messageRepo.saved, 1)

		select {
		case payload := <-publisher.payloads:
			pushed, ok := payload.(*dto.MessageDTO)
			require.True(t, ok)
			assert.Equal(t, "hello", pushed.Content)
		default:
			t.Fatal("expected a fan-out payload")
		}
		assert.Equal(t, uint64(1), convRepo.conversations[convID].MaxMsgSeq)
	})

	t.Run("failed detail write goes to the retry queue", func(t *testing.T) {
		_, messageRepo, _, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)
		messageRepo.saveErr = errors.New("mongo timeout")

		msg, err := svc.SendMessage(ctx, 5, &dto.SendMessageReq{
			ConversationID: convID,
			MsgType:        1,
			Content:        "hello",
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), msg.Seq)
		assert.Len(t, svc.retryChan, 1)
	})

	t.Run("outsider cannot post", func(t *testing.T) {
		_, _, _, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)

		_, err = svc.SendMessage(ctx, 77, &dto.SendMessageReq{
			ConversationID: convID,
			MsgType:        1,
			Content:        "hello",
		})
		assert.ErrorIs(t, err, ErrNotConversationMember)
	})

	t.Run("neither conversation nor target", func(t *testing.T) {
		_, _, _, svc := newChatFixture()
		_, err := svc.SendMessage(ctx, 5, &dto.SendMessageReq{MsgType: 1, Content: "hi"})
		assert.ErrorIs(t, err, ErrParamInvalid)
	})
}

func TestGetChatHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("non member is refused", func(t *testing.T) {
		_, _, _, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)

		_, err = svc.GetChatHistory(ctx, 77, convID, 0, 20)
		assert.ErrorIs(t, err, UnauthorizedError)
	})

	t.Run("missing head is stubbed from the preview", func(t *testing.T) {
		convRepo, messageRepo, _, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)

		conv := convRepo.conversations[convID]
		conv.MaxMsgSeq = 5
		conv.LastMsgContent = "latest"
		conv.LastSenderID = 9
		conv.LastMessageAt = time.Now()

		messageRepo.history = []*mongo.Message{
			{ConversationID: convID, SenderID: 5, Content: "older", Seq: 3},
		}

		history, err := svc.GetChatHistory(ctx, 5, convID, 0, 20)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, uint64(5), history[0].Seq)
		assert.Equal(t, "latest", history[0].Content)
		assert.Equal(t, uint64(3), history[1].Seq)
	})

	t.Run("recovered head replaces the stub", func(t *testing.T) {
		convRepo, messageRepo, _, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)

		conv := convRepo.conversations[convID]
		conv.MaxMsgSeq = 5
		conv.LastMsgContent = "latest"
		conv.LastSenderID = 9

		messageRepo.history = []*mongo.Message{
			{ConversationID: convID, SenderID: 5, Content: "older", Seq: 3},
		}
		// The retry workers landed the head after the page query missed it.
		messageRepo.bySeq = map[uint64]*mongo.Message{
			5: {ID: "abc123", ConversationID: convID, SenderID: 9, Content: "latest", Seq: 5},
		}

		history, err := svc.GetChatHistory(ctx, 5, convID, 0, 20)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "abc123", history[0].ID)
		assert.Equal(t, uint64(5), history[0].Seq)
	})

	t.Run("complete page passes through", func(t *testing.T) {
		convRepo, messageRepo, _, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)

		convRepo.conversations[convID].MaxMsgSeq = 2
		messageRepo.history = []*mongo.Message{
			{ConversationID: convID, Seq: 2, Content: "b"},
			{ConversationID: convID, Seq: 1, Content: "a"},
		}

		history, err := svc.GetChatHistory(ctx, 5, convID, 0, 20)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "b", history[0].Content)
	})
}

func TestGetConversationList(t *testing.T) {
	ctx := context.Background()
	convRepo, _, _, svc := newChatFixture()

	peerKey := "5_9"
	convRepo.memList = []*model.ConversationMember{
		{
			ConversationID: 1,
			UserID:         5,
			UnreadCount:    3,
			Conversation: model.Conversation{
				ID:             1,
				Type:           1,
				PeerKey:        &peerKey,
				LastMsgContent: "see you",
				MaxMsgSeq:      4,
			},
		},
	}
	convRepo.totalUnread = 3
	svc.userRepo = &fakeUserRepo{profiles: map[uint64]*model.UserProfile{
		9: {UserID: 9, DisplayName: "Riko", AvatarURL: "riko.png"},
	}}

	list, err := svc.GetConversationList(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list.Conversations, 1)

	row := list.Conversations[0]
	assert.Equal(t, uint64(9), row.PeerID)
	assert.Equal(t, "Riko", row.PeerName)
	assert.Equal(t, "riko.png", row.PeerAvatar)
	assert.Equal(t, uint64(3), row.UnreadCount)
	assert.Equal(t, int64(3), list.TotalUnread)
}

func TestMarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps to the conversation head", func(t *testing.T) {
		convRepo, _, publisher, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)
		convRepo.conversations[convID].MaxMsgSeq = 10

		err = svc.MarkAsRead(ctx, 5, convID, 99)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), convRepo.readSeqs[5])

		select {
		case payload := <-publisher.payloads:
			receipt, ok := payload.(*dto.ReadReceiptDTO)
			require.True(t, ok)
			assert.Equal(t, uint64(10), receipt.ReadSeq)
			assert.Equal(t, "READ_RECEIPT", receipt.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("expected a read receipt")
		}
	})

	t.Run("non member is refused", func(t *testing.T) {
		_, _, _, svc := newChatFixture()
		convID, err := svc.GetOrCreateConversation(ctx, 5, 9)
		require.NoError(t, err)

		err = svc.MarkAsRead(ctx, 77, convID, 1)
		assert.ErrorIs(t, err, UnauthorizedError)
	})
}
