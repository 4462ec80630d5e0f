package model

import "time"

// Conversation is the chat room master row. Direct chats are
// deduplicated by PeerKey ("loUID_hiUID"); groups carry a title.
type Conversation struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Type           int8      `gorm:"not null;default:1" json:"type"` // 1-direct, 2-group
	PeerKey        *string   `gorm:"uniqueIndex;type:varchar(64)" json:"peerKey,omitempty"`
	Title          string    `gorm:"type:varchar(100)" json:"title"`
	MaxMsgSeq      uint64    `gorm:"not null;default:0" json:"maxMsgSeq"`
	LastMsgContent string    `gorm:"type:varchar(255)" json:"lastMsgContent"`
	LastMsgType    int8      `gorm:"not null;default:1" json:"lastMsgType"`
	LastSenderID   uint64    `gorm:"not null;default:0" json:"lastSenderId"`
	LastMessageAt  time.Time `gorm:"index" json:"lastMessageAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Conversation) TableName() string { return "conversations" }

// ConversationMember is the membership row with per-user read state.
type ConversationMember struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	ConversationID uint64    `gorm:"uniqueIndex:idx_conv_user" json:"conversationId"`
	UserID         uint64    `gorm:"uniqueIndex:idx_conv_user;index" json:"userId"`
	ReadMsgSeq     uint64    `gorm:"not null;default:0" json:"readMsgSeq"`
	IsMuted        bool      `gorm:"not null;default:false" json:"isMuted"`
	IsPinned       bool      `gorm:"not null;default:false" json:"isPinned"`
	JoinedAt       time.Time `json:"joinedAt"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID" json:"conversation"`

	// Read-only virtual column populated by the list query.
	UnreadCount uint64 `gorm:"->" json:"unreadCount"`
}

func (ConversationMember) TableName() string { return "conversation_members" }
