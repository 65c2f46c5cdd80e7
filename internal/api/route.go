package api

import (
	"net/http"
	"time"

	"github.com/xpcclll/footprint/internal/api/config"
	"github.com/xpcclll/footprint/internal/api/dto"
	"github.com/xpcclll/footprint/internal/api/middleware"
	"github.com/xpcclll/footprint/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & CORS & 请求体限制 & Logger
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.BodyLimitMiddleware(config.Cfg.Server.MaxBodySize))
	logger.SetupGin(r)

	// 上传的图片直接按文件名静态回源
	r.Static(config.Cfg.Upload.BaseURL, config.Cfg.Upload.Dir)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Response{
			Success: false,
			Message: "请求的资源不存在",
		})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"service":   "footprints-backend",
			})
		})

		footprintGroup := apiGroup.Group("/footprints")
		{
			footprintGroup.GET("", group.FootprintHandler.ListFootprints)
			footprintGroup.POST("", group.FootprintHandler.CreateFootprint)
			footprintGroup.DELETE("/:id", group.FootprintHandler.DeleteFootprint)
		}

		apiGroup.GET("/stats", group.StatsHandler.GetStats)
	}

	return r
}
