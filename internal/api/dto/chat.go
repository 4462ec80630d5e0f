package dto

import "time"

// SendMessageReq sends one message. Either an existing conversation id
// or a target user (which opens the direct chat lazily) must be set.
type SendMessageReq struct {
	ConversationID uint64 `json:"conversation_id"`
	TargetUserID   uint64 `json:"target_user_id"`
	MsgType        int    `json:"msg_type" binding:"required"` // 1-text, 2-image
	Content        string `json:"content" binding:"required" validate:"max=2000"`
}

// MessageDTO is the message detail response and the websocket push
// payload.
type MessageDTO struct {
	ID             string    `json:"id,omitempty"`
	ConversationID uint64    `json:"conversation_id"`
	SenderID       uint64    `json:"sender_id"`
	MsgType        int       `json:"msg_type"`
	Content        string    `json:"content"`
	Seq            uint64    `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationDTO is one inbox row.
type ConversationDTO struct {
	ConversationID uint64    `json:"conversation_id"`
	Type           int8      `json:"type"` // 1-direct, 2-group
	PeerID         uint64    `json:"peer_id"`
	PeerName       string    `json:"peer_name,omitempty"`
	PeerAvatar     string    `json:"peer_avatar,omitempty"`
	Title          string    `json:"title,omitempty"`
	LastMsgContent string    `json:"last_msg_content"`
	LastMsgType    int8      `json:"last_msg_type"`
	LastSenderID   uint64    `json:"last_sender_id"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    uint64    `json:"unread_count"`
	IsMuted        bool      `json:"is_muted"`
	IsPinned       bool      `json:"is_pinned"`
}

// ConversationListDTO is the inbox response. TotalUnread backs the
// global badge across all conversations.
type ConversationListDTO struct {
	Conversations []*ConversationDTO `json:"conversations"`
	TotalUnread   int64              `json:"total_unread"`
}

// ReadReceiptDTO is the read-state push.
type ReadReceiptDTO struct {
	ConversationID uint64 `json:"conversation_id"`
	UserID         uint64 `json:"user_id"`
	ReadSeq        uint64 `json:"read_seq"`
	Type           string `json:"type"`
}

// MarkAsReadReq advances the caller's read pointer.
type MarkAsReadReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
	Sequence       uint64 `json:"sequence" binding:"required"`
}
