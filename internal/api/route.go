package api

import (
	"axis6/internal/api/middleware"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/me", group.UserHandler.GetMe)
				authGroup.PUT("/me", group.UserHandler.UpdateProfile)
				authGroup.PUT("/password", group.UserHandler.ChangePassword)
				authGroup.POST("/avatar", group.UserHandler.UploadAvatar)
				authGroup.GET("/search", group.UserHandler.SearchUsers)
				authGroup.POST("/cancel", group.UserHandler.DeleteMe)
			}

			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.POST("/:id/ban", group.UserHandler.BanUser)
				adminGroup.POST("/:id/unban", group.UserHandler.UnBanUser)
			}
		}

		categoryGroup := apiGroup.Group("/categories")
		{
			categoryGroup.GET("", group.CategoryHandler.ListCategories)

			adminGroup := categoryGroup.Group("")
			adminGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
			{
				adminGroup.PUT("/:id", group.CategoryHandler.UpdateCategory)
			}
		}

		checkinGroup := apiGroup.Group("/checkins")
		checkinGroup.Use(middleware.AuthMiddleware())
		{
			checkinGroup.POST("", group.CheckinHandler.Checkin)
			checkinGroup.GET("/day", group.CheckinHandler.GetDay)
			checkinGroup.GET("/range", group.CheckinHandler.GetRange)
			checkinGroup.DELETE("/:categoryId", group.CheckinHandler.DeleteCheckin)
		}

		streakGroup := apiGroup.Group("/streaks")
		streakGroup.Use(middleware.AuthMiddleware())
		{
			streakGroup.GET("", group.StreakHandler.GetStreaks)
		}

		analyticsGroup := apiGroup.Group("/analytics")
		analyticsGroup.Use(middleware.AuthMiddleware())
		{
			analyticsGroup.GET("/stats/7d", group.AnalyticsHandler.GetStats7Days)
			analyticsGroup.GET("/stats/30d", group.AnalyticsHandler.GetStats30Days)
			analyticsGroup.GET("/stats/day", group.AnalyticsHandler.GetStatForDay)
			analyticsGroup.GET("/summary", group.AnalyticsHandler.GetSummary)
			analyticsGroup.GET("/mood", group.AnalyticsHandler.GetMoodTrend)
		}

		timeBlockGroup := apiGroup.Group("/time-blocks")
		timeBlockGroup.Use(middleware.AuthMiddleware())
		{
			timeBlockGroup.POST("", group.TimeBlockHandler.CreateTimeBlock)
			timeBlockGroup.GET("/day", group.TimeBlockHandler.GetDay)
			timeBlockGroup.PUT("/:id", group.TimeBlockHandler.UpdateTimeBlock)
			timeBlockGroup.DELETE("/:id", group.TimeBlockHandler.DeleteTimeBlock)
		}

		chatGroup := apiGroup.Group("/chat")
		{
			chatGroup.GET("/ws", group.WSHandler.Connect)

			authGroup := chatGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/send", group.ChatHandler.SendMessage)
				authGroup.GET("/history", group.ChatHandler.GetChatHistory)
				authGroup.GET("/sync", group.ChatHandler.SyncMessages)
				authGroup.GET("/list", group.ChatHandler.GetConversationList)
				authGroup.POST("/read", group.ChatHandler.MarkAsRead)
			}
		}
	}

	return r
}
