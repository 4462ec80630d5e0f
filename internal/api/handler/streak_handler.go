package handler

import (
	"axis6/internal/api/dto"
	"axis6/internal/pkg/response"
	"axis6/internal/pkg/util"
	"axis6/internal/service"

	"github.com/gin-gonic/gin"
)

type StreakHandler struct {
	streakSvc service.StreakService
}

func NewStreakHandler(streakSvc service.StreakService) *StreakHandler {
	return &StreakHandler{streakSvc: streakSvc}
}

func (s *StreakHandler) GetStreaks(c *gin.Context) {
	userID := c.GetUint64("user_id")
	streaks, err := s.streakSvc.GetStreaks(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	res := make([]*dto.StreakDTO, 0, len(streaks))
	for _, streak := range streaks {
		item := &dto.StreakDTO{
			CategoryID:    streak.CategoryID,
			CurrentStreak: streak.CurrentStreak,
			LongestStreak: streak.LongestStreak,
		}
		if streak.LastCheckinDate != nil {
			last := util.FormatDate(*streak.LastCheckinDate)
			item.LastCheckinDate = &last
		}
		res = append(res, item)
	}
	response.Success(c, res)
}
