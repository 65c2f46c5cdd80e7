package api

import "github.com/xpcclll/footprint/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	FootprintHandler *handler.FootprintHandler
	StatsHandler     *handler.StatsHandler
}
