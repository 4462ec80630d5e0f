package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCheckinService struct {
	checkinResult *model.Checkin
	checkinErr    error
	dayResult     []*model.Checkin
	deleteErr     error

	lastUserID uint64
	lastReq    *dto.CheckinReq
}

func (f *fakeCheckinService) Checkin(ctx context.Context, userID uint64, req *dto.CheckinReq) (*model.Checkin, error) {
	f.lastUserID = userID
	f.lastReq = req
	return f.checkinResult, f.checkinErr
}

func (f *fakeCheckinService) GetDay(ctx context.Context, userID uint64, date string) ([]*model.Checkin, error) {
	f.lastUserID = userID
	return f.dayResult, nil
}

func (f *fakeCheckinService) GetRange(ctx context.Context, userID uint64, from, to string) ([]*model.Checkin, error) {
	return nil, nil
}

func (f *fakeCheckinService) DeleteCheckin(ctx context.Context, userID, categoryID uint64, date string) error {
	return f.deleteErr
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newCheckinRouter(svc service.CheckinService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint64(7))
	})

	h := NewCheckinHandler(svc)
	router.POST("/api/checkins", h.Checkin)
	router.GET("/api/checkins/day", h.GetDay)
	router.DELETE("/api/checkins/:categoryId", h.DeleteCheckin)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *envelope {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return &env
}

func TestCheckinHandlerCheckin(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		svc := &fakeCheckinService{
			checkinResult: &model.Checkin{ID: 11, UserID: 7, CategoryID: 1, CheckinDate: day, Mood: 8},
		}
		router := newCheckinRouter(svc)

		env := doJSON(t, router, http.MethodPost, "/api/checkins", gin.H{
			"category_id": 1,
			"mood":        8,
		})
		assert.Equal(t, 200, env.Code)
		assert.Equal(t, uint64(7), svc.lastUserID)

		var got dto.CheckinDTO
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, uint64(1), got.CategoryID)
		assert.Equal(t, "2026-03-10", got.Date)
		assert.Equal(t, 8, got.Mood)
	})

	t.Run("mood outside bounds fails validation", func(t *testing.T) {
		svc := &fakeCheckinService{}
		router := newCheckinRouter(svc)

		env := doJSON(t, router, http.MethodPost, "/api/checkins", gin.H{
			"category_id": 1,
			"mood":        99,
		})
		assert.Equal(t, 400, env.Code)
		assert.Nil(t, svc.lastReq)
	})

	t.Run("missing category fails binding", func(t *testing.T) {
		svc := &fakeCheckinService{}
		router := newCheckinRouter(svc)

		env := doJSON(t, router, http.MethodPost, "/api/checkins", gin.H{"mood": 5})
		assert.Equal(t, 400, env.Code)
	})

	t.Run("service errors keep their business code", func(t *testing.T) {
		svc := &fakeCheckinService{checkinErr: service.ErrCheckinFutureDate}
		router := newCheckinRouter(svc)

		env := doJSON(t, router, http.MethodPost, "/api/checkins", gin.H{"category_id": 1})
		assert.Equal(t, 400, env.Code)
		assert.Equal(t, service.ErrCheckinFutureDate.Error(), env.Message)
	})
}

func TestCheckinHandlerGetDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := &fakeCheckinService{
		dayResult: []*model.Checkin{
			{ID: 1, CategoryID: 1, CheckinDate: day, Mood: 7},
			{ID: 2, CategoryID: 4, CheckinDate: day},
		},
	}
	router := newCheckinRouter(svc)

	env := doJSON(t, router, http.MethodGet, "/api/checkins/day?date=2026-03-10", nil)
	require.Equal(t, 200, env.Code)

	var got dto.DayDTO
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "2026-03-10", got.Date)
	assert.Equal(t, 2, got.Completed)
	assert.Equal(t, 6, got.Total)
	require.Len(t, got.Checkins, 2)
}

func TestCheckinHandlerDeleteCheckin(t *testing.T) {
	t.Run("bad category id", func(t *testing.T) {
		router := newCheckinRouter(&fakeCheckinService{})
		env := doJSON(t, router, http.MethodDelete, "/api/checkins/abc?date=2026-03-10", nil)
		assert.Equal(t, 400, env.Code)
	})

	t.Run("missing date", func(t *testing.T) {
		router := newCheckinRouter(&fakeCheckinService{})
		env := doJSON(t, router, http.MethodDelete, "/api/checkins/1", nil)
		assert.Equal(t, 400, env.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		router := newCheckinRouter(&fakeCheckinService{deleteErr: service.ErrCheckinNotFound})
		env := doJSON(t, router, http.MethodDelete, "/api/checkins/1?date=2026-03-10", nil)
		assert.Equal(t, 404, env.Code)
	})

	t.Run("success", func(t *testing.T) {
		router := newCheckinRouter(&fakeCheckinService{})
		env := doJSON(t, router, http.MethodDelete, "/api/checkins/1?date=2026-03-10", nil)
		assert.Equal(t, 200, env.Code)
	})
}
