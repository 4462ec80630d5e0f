package handler

import (
	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/response"
	"axis6/internal/pkg/util"
	"axis6/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	statsSvc service.StatsService
}

func NewAnalyticsHandler(statsSvc service.StatsService) *AnalyticsHandler {
	return &AnalyticsHandler{statsSvc: statsSvc}
}

func (s *AnalyticsHandler) GetStats7Days(c *gin.Context) {
	userID := c.GetUint64("user_id")
	stats, err := s.statsSvc.GetStatsBy7Days(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toDailyStatDTOs(stats))
}

func (s *AnalyticsHandler) GetStats30Days(c *gin.Context) {
	userID := c.GetUint64("user_id")
	stats, err := s.statsSvc.GetStatsBy30Days(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toDailyStatDTOs(stats))
}

// GetMoodTrend projects the 30-day window down to days that carry a
// recorded mood.
func (s *AnalyticsHandler) GetMoodTrend(c *gin.Context) {
	userID := c.GetUint64("user_id")
	stats, err := s.statsSvc.GetStatsBy30Days(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	points := make([]*dto.MoodPointDTO, 0, len(stats))
	for _, stat := range stats {
		if stat.MoodAvg == 0 {
			continue
		}
		points = append(points, &dto.MoodPointDTO{
			Date:    util.FormatDate(stat.StatDate),
			MoodAvg: stat.MoodAvg,
		})
	}
	response.Success(c, points)
}

// GetStatForDay returns one day's aggregate, or null when the day has
// no checkins.
func (s *AnalyticsHandler) GetStatForDay(c *gin.Context) {
	date := c.Query("date")
	day, err := util.ParseDate(date, "")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	stat, err := s.statsSvc.GetStatByDate(c.Request.Context(), userID, day)
	if err != nil {
		response.Error(c, err)
		return
	}
	if stat == nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, &dto.DailyStatDTO{
		Date:                util.FormatDate(stat.StatDate),
		CategoriesCompleted: stat.CategoriesCompleted,
		CompletionRate:      stat.CompletionRate,
		MoodAvg:             stat.MoodAvg,
	})
}

// GetSummary condenses the 30-day window into the headline numbers.
func (s *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID := c.GetUint64("user_id")
	stats, err := s.statsSvc.GetStatsBy30Days(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary := &dto.StatsSummaryDTO{DaysTracked: len(stats)}
	rateSum := 0.0
	moodSum := 0.0
	moodDays := 0
	for _, stat := range stats {
		rateSum += stat.CompletionRate
		if stat.CategoriesCompleted == consts.CategoryCount {
			summary.PerfectDays++
		}
		if stat.MoodAvg > 0 {
			moodSum += stat.MoodAvg
			moodDays++
		}
	}
	if len(stats) > 0 {
		summary.CompletionRate = rateSum / float64(len(stats))
	}
	if moodDays > 0 {
		summary.MoodAvg = moodSum / float64(moodDays)
	}
	response.Success(c, summary)
}

func toDailyStatDTOs(stats []*model.DailyStat) []*dto.DailyStatDTO {
	res := make([]*dto.DailyStatDTO, 0, len(stats))
	for _, stat := range stats {
		res = append(res, &dto.DailyStatDTO{
			Date:                util.FormatDate(stat.StatDate),
			CategoriesCompleted: stat.CategoriesCompleted,
			CompletionRate:      stat.CompletionRate,
			MoodAvg:             stat.MoodAvg,
		})
	}
	return res
}
