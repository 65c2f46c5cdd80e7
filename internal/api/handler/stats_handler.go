package handler

import (
	"github.com/xpcclll/footprint/internal/pkg/response"
	"github.com/xpcclll/footprint/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsSvc: statsSvc,
	}
}

func (s *StatsHandler) GetStats(c *gin.Context) {
	out, err := s.statsSvc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, out)
}
