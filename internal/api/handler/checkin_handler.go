package handler

import (
	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/consts"
	"axis6/internal/pkg/response"
	"axis6/internal/pkg/util"
	"axis6/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CheckinHandler struct {
	checkinSvc service.CheckinService
}

func NewCheckinHandler(checkinSvc service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinSvc: checkinSvc}
}

func (s *CheckinHandler) Checkin(c *gin.Context) {
	var req dto.CheckinReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	userID := c.GetUint64("user_id")
	checkin, err := s.checkinSvc.Checkin(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toCheckinDTO(checkin))
}

// GetDay returns one day's checkins plus the hexagon summary. The
// date query is optional and defaults to today in the user's timezone.
func (s *CheckinHandler) GetDay(c *gin.Context) {
	userID := c.GetUint64("user_id")
	date := c.Query("date")

	checkins, err := s.checkinSvc.GetDay(c.Request.Context(), userID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.CheckinDTO, 0, len(checkins))
	for _, checkin := range checkins {
		items = append(items, *toCheckinDTO(checkin))
	}
	day := date
	if day == "" && len(checkins) > 0 {
		day = util.FormatDate(checkins[0].CheckinDate)
	}
	response.Success(c, &dto.DayDTO{
		Date:      day,
		Checkins:  items,
		Completed: len(items),
		Total:     consts.CategoryCount,
	})
}

func (s *CheckinHandler) GetRange(c *gin.Context) {
	userID := c.GetUint64("user_id")
	from := c.Query("from")
	to := c.Query("to")

	checkins, err := s.checkinSvc.GetRange(c.Request.Context(), userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.CheckinDTO, 0, len(checkins))
	for _, checkin := range checkins {
		items = append(items, toCheckinDTO(checkin))
	}
	response.Success(c, items)
}

func (s *CheckinHandler) DeleteCheckin(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("categoryId"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	date := c.Query("date")
	if date == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.checkinSvc.DeleteCheckin(c.Request.Context(), userID, categoryID, date); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func toCheckinDTO(checkin *model.Checkin) *dto.CheckinDTO {
	return &dto.CheckinDTO{
		ID:         checkin.ID,
		CategoryID: checkin.CategoryID,
		Date:       util.FormatDate(checkin.CheckinDate),
		Mood:       checkin.Mood,
		Note:       checkin.Note,
	}
}
