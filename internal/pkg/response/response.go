package response

import (
	"errors"
	log "log/slog"
	"net/http"

	"github.com/xpcclll/footprint/internal/api/dto"
	"github.com/xpcclll/footprint/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    data,
	})
}

// SuccessMsg 带提示语的成功返回
func SuccessMsg(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessList 列表成功返回，分页信息挂在信封顶层
func SuccessList(c *gin.Context, data interface{}, pagination interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{
		Success: false,
		Message: message,
	})
}

// Error 处理错误。未登记的错误只回传通用提示，细节留在服务端日志里
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, service.ErrParamInvalid.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, "Json错误")
		return
	}

	for known, status := range service.ErrorMap {
		if errors.Is(err, known) {
			Fail(c, status, known.Error())
			return
		}
	}

	log.ErrorContext(c.Request.Context(), "unhandled error", "err", err)
	Fail(c, http.StatusInternalServerError, service.UnExpectedError.Error())
}
