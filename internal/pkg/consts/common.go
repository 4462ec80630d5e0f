package consts

const (
	// CategoryCount is the number of wellness axes every user tracks.
	CategoryCount = 6

	MoodMin = 1
	MoodMax = 10
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	ConversationTypeDirect = 1
	ConversationTypeGroup  = 2
)

const (
	MessageTypeText   = 1
	MessageTypeImage  = 2
	MessageTypeRecall = 3
)

const (
	DefaultAvatarURL = "default_avatar.png"
	DefaultTimezone  = "UTC"
)
