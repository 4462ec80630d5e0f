package kafka

import "time"

// CheckinEvent is published for every checkin write or delete. The
// consumer side recomputes the affected user's daily stats.
type CheckinEvent struct {
	UserID     uint64    `json:"user_id"`
	CategoryID uint64    `json:"category_id"`
	Date       string    `json:"date"` // YYYY-MM-DD in the user's timezone
	Deleted    bool      `json:"deleted"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserEvent is published when a profile changes or an account is
// deleted, keeping the search index in sync.
type UserEvent struct {
	UserID  uint64 `json:"user_id"`
	Deleted bool   `json:"deleted"`
	Version int64  `json:"version"` // monotonic, used for ES external versioning
}
