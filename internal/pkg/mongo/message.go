package mongo

import (
	"time"
)

// Message is the chat message detail document. The authoritative
// sequence number comes from the Postgres conversation row.
type Message struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	ConversationID uint64    `bson:"conversation_id" json:"conversationId"`
	SenderID       uint64    `bson:"sender_id" json:"senderId"`
	MsgType        int       `bson:"msg_type" json:"msgType"` // 1-text, 2-image, 3-recall
	Content        string    `bson:"content" json:"content"`
	Seq            uint64    `bson:"seq" json:"seq"`
	ReplyTo        uint64    `bson:"reply_to,omitempty" json:"replyTo"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
