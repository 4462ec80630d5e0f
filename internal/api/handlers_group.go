package api

import "axis6/internal/api/handler"

// HandlersGroup bundles every initialized handler for the router.
type HandlersGroup struct {
	UserHandler      *handler.UserHandler
	CategoryHandler  *handler.CategoryHandler
	CheckinHandler   *handler.CheckinHandler
	StreakHandler    *handler.StreakHandler
	AnalyticsHandler *handler.AnalyticsHandler
	TimeBlockHandler *handler.TimeBlockHandler
	ChatHandler      *handler.ChatHandler
	WSHandler        *handler.WsHandler
}
