package handler

import (
	"strconv"

	"github.com/xpcclll/footprint/internal/api/dto"
	"github.com/xpcclll/footprint/internal/pkg/response"
	"github.com/xpcclll/footprint/internal/pkg/util"
	"github.com/xpcclll/footprint/internal/service"

	"github.com/gin-gonic/gin"
)

type FootprintHandler struct {
	footprintSvc service.FootprintService
}

func NewFootprintHandler(footprintSvc service.FootprintService) *FootprintHandler {
	return &FootprintHandler{
		footprintSvc: footprintSvc,
	}
}

func (s *FootprintHandler) ListFootprints(c *gin.Context) {
	var query dto.ListQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	out, err := s.footprintSvc.List(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessList(c, out.Items, out.Pagination)
}

func (s *FootprintHandler) CreateFootprint(c *gin.Context) {
	var req dto.CreateFootprintDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	out, err := s.footprintSvc.Create(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMsg(c, "足迹发布成功", out)
}

func (s *FootprintHandler) DeleteFootprint(c *gin.Context) {
	idStr := c.Param("id")

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.footprintSvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMsg(c, "足迹删除成功", nil)
}
