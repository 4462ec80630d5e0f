package consts

const (
	StatsDirtyKey       = "stats:dirty"
	DailyStats7DaysKey  = "stats:daily:7days:"
	DailyStats30DaysKey = "stats:daily:30days:"
	StreakOverviewKey   = "streak:overview:"
	CategoryListKey     = "category:list"
	ChatUserChannelKey  = "chat:user:"
	ReminderSentKey     = "reminder:sent:"
)

const (
	DailyStatLock = "lock:stats:daily:"
	RollupLock    = "lock:stats:rollup"
)
