package middleware

import (
	"net/http"

	"github.com/xpcclll/footprint/internal/api/dto"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware 在进入业务处理前限制请求体大小。
// 声明超限的请求直接拒绝，未声明长度的由 MaxBytesReader 兜底。
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.Response{
				Success: false,
				Message: "请求体过大",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
