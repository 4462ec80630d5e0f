package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsService struct {
	stats30 []*model.DailyStat
	byDate  *model.DailyStat
}

func (f *fakeStatsService) RecalculateDay(ctx context.Context, userID uint64, date string) error {
	return nil
}

func (f *fakeStatsService) GetStatByDate(ctx context.Context, userID uint64, date time.Time) (*model.DailyStat, error) {
	return f.byDate, nil
}

func (f *fakeStatsService) GetStatsBy7Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error) {
	return nil, nil
}

func (f *fakeStatsService) GetStatsBy30Days(ctx context.Context, userID uint64) ([]*model.DailyStat, error) {
	return f.stats30, nil
}

var _ service.StatsService = (*fakeStatsService)(nil)

func newAnalyticsRouter(svc service.StatsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint64(7))
	})

	h := NewAnalyticsHandler(svc)
	router.GET("/api/analytics/summary", h.GetSummary)
	router.GET("/api/analytics/stats/day", h.GetStatForDay)
	return router
}

func TestAnalyticsHandlerGetSummary(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("aggregates the window", func(t *testing.T) {
		svc := &fakeStatsService{stats30: []*model.DailyStat{
			{StatDate: day, CategoriesCompleted: 6, CompletionRate: 1.0, MoodAvg: 8},
			{StatDate: day.AddDate(0, 0, 1), CategoriesCompleted: 3, CompletionRate: 0.5},
			{StatDate: day.AddDate(0, 0, 2), CategoriesCompleted: 6, CompletionRate: 1.0, MoodAvg: 6},
		}}
		router := newAnalyticsRouter(svc)

		env := doJSON(t, router, http.MethodGet, "/api/analytics/summary", nil)
		require.Equal(t, 200, env.Code)

		var got dto.StatsSummaryDTO
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 3, got.DaysTracked)
		assert.Equal(t, 2, got.PerfectDays)
		assert.InDelta(t, 2.5/3.0, got.CompletionRate, 1e-9)
		assert.InDelta(t, 7.0, got.MoodAvg, 1e-9)
	})

	t.Run("empty window", func(t *testing.T) {
		router := newAnalyticsRouter(&fakeStatsService{})

		env := doJSON(t, router, http.MethodGet, "/api/analytics/summary", nil)
		require.Equal(t, 200, env.Code)

		var got dto.StatsSummaryDTO
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Zero(t, got.DaysTracked)
		assert.Zero(t, got.CompletionRate)
		assert.Zero(t, got.MoodAvg)
	})
}

func TestAnalyticsHandlerGetStatForDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		svc := &fakeStatsService{byDate: &model.DailyStat{
			StatDate: day, CategoriesCompleted: 4, CompletionRate: 4.0 / 6.0, MoodAvg: 7,
		}}
		router := newAnalyticsRouter(svc)

		env := doJSON(t, router, http.MethodGet, "/api/analytics/stats/day?date=2026-03-10", nil)
		require.Equal(t, 200, env.Code)

		var got dto.DailyStatDTO
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "2026-03-10", got.Date)
		assert.Equal(t, 4, got.CategoriesCompleted)
	})

	t.Run("untracked day returns null", func(t *testing.T) {
		router := newAnalyticsRouter(&fakeStatsService{})
		env := doJSON(t, router, http.MethodGet, "/api/analytics/stats/day?date=2026-03-10", nil)
		assert.Equal(t, 200, env.Code)
		assert.Nil(t, env.Data)
	})

	t.Run("bad date", func(t *testing.T) {
		router := newAnalyticsRouter(&fakeStatsService{})
		env := doJSON(t, router, http.MethodGet, "/api/analytics/stats/day?date=nope", nil)
		assert.Equal(t, 400, env.Code)
	})
}
