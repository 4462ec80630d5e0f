package handler

import (
	"axis6/internal/api/dto"
	"axis6/internal/model"
	"axis6/internal/pkg/response"
	"axis6/internal/pkg/util"
	"axis6/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TimeBlockHandler struct {
	timeBlockSvc service.TimeBlockService
}

func NewTimeBlockHandler(timeBlockSvc service.TimeBlockService) *TimeBlockHandler {
	return &TimeBlockHandler{timeBlockSvc: timeBlockSvc}
}

func (s *TimeBlockHandler) CreateTimeBlock(c *gin.Context) {
	var req dto.TimeBlockReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	userID := c.GetUint64("user_id")
	block, err := s.timeBlockSvc.CreateTimeBlock(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toTimeBlockDTO(block))
}

func (s *TimeBlockHandler) GetDay(c *gin.Context) {
	userID := c.GetUint64("user_id")
	date := c.Query("date")
	if date == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	blocks, err := s.timeBlockSvc.GetDay(c.Request.Context(), userID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	res := make([]*dto.TimeBlockDTO, 0, len(blocks))
	for _, block := range blocks {
		res = append(res, toTimeBlockDTO(block))
	}
	response.Success(c, res)
}

func (s *TimeBlockHandler) UpdateTimeBlock(c *gin.Context) {
	blockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.TimeBlockReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	userID := c.GetUint64("user_id")
	block, err := s.timeBlockSvc.UpdateTimeBlock(c.Request.Context(), userID, blockID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toTimeBlockDTO(block))
}

func (s *TimeBlockHandler) DeleteTimeBlock(c *gin.Context) {
	blockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")
	if err := s.timeBlockSvc.DeleteTimeBlock(c.Request.Context(), userID, blockID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func toTimeBlockDTO(block *model.TimeBlock) *dto.TimeBlockDTO {
	return &dto.TimeBlockDTO{
		ID:          block.ID,
		CategoryID:  block.CategoryID,
		Date:        util.FormatDate(block.BlockDate),
		StartMinute: block.StartMinute,
		DurationMin: block.DurationMin,
		Activity:    block.Activity,
		Note:        block.Note,
	}
}
