package handler

import (
	"axis6/internal/api/dto"
	"axis6/internal/pkg/response"
	"axis6/internal/pkg/util"
	"axis6/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

func (s *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := s.categorySvc.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	res := make([]*dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		item := &dto.CategoryDTO{}
		if err := copier.Copy(item, category); err != nil {
			response.Error(c, err)
			return
		}
		res = append(res, item)
	}
	response.Success(c, res)
}

func (s *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var updDTO dto.UpdateCategoryDTO
	if err := c.ShouldBind(&updDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	if err := s.categorySvc.UpdateCategory(c.Request.Context(), id, &updDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
