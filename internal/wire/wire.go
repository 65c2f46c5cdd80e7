package wire

import (
	"github.com/xpcclll/footprint/internal/api"
	"github.com/xpcclll/footprint/internal/api/config"
	"github.com/xpcclll/footprint/internal/api/handler"
	"github.com/xpcclll/footprint/internal/job"
	"github.com/xpcclll/footprint/internal/pkg/cron"
	"github.com/xpcclll/footprint/internal/pkg/imagestore"
	"github.com/xpcclll/footprint/internal/repository"
	"github.com/xpcclll/footprint/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	images, err := imagestore.New(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		return nil, err
	}

	footprintRepo := repository.NewFootprintRepository(db)

	footprintService := service.NewFootprintService(footprintRepo, images)
	statsService := service.NewStatsService(footprintRepo)

	handlers := &api.HandlersGroup{
		FootprintHandler: handler.NewFootprintHandler(footprintService),
		StatsHandler:     handler.NewStatsHandler(statsService),
	}

	router := api.SetupRouter(handlers)

	cleanupJob := job.NewUploadCleanupJob(footprintRepo, cfg.Upload.Dir)
	cronMgr := cron.NewCronManager(cleanupJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
