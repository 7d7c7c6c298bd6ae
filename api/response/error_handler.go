/*
Package response - API 层统一响应

状态码只由 pkg/errors 的错误码决定，领域层不感知 HTTP。
5xx 响应体统一为 "internal server error"，细节只进日志。

	成功: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	失败: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }
*/
package response

import (
	stdErrors "errors"
	"net/http"

	"fooddash/domain/shared"
	"fooddash/pkg/errors"
	"fooddash/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getRequestID(c *gin.Context) string {
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// GetRequestID 由 RequestID 中间件写入
func GetRequestID(c *gin.Context) string {
	return getRequestID(c)
}

func requestFields(c *gin.Context) []zap.Field {
	return []zap.Field{
		zap.String("request_id", getRequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	}
}

// HandleBadRequest 参数绑定失败，没有进入应用层
func HandleBadRequest(c *gin.Context, err error, message string) {
	logger.Warn(message, append(requestFields(c), zap.Error(err))...)
	abortWith(c, errors.BadRequest(message))
}

// HandleAppError 领域错误和应用错误的统一出口
func HandleAppError(c *gin.Context, err error) {
	appErr := errors.FromDomainError(err)
	status := appErr.HTTPStatusCode()

	fields := append(requestFields(c),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", status),
		zap.Error(err),
	)
	if entity, field, ok := shared.DetailsOf(err); ok {
		fields = append(fields, zap.String("entity", entity))
		if field != "" {
			fields = append(fields, zap.String("field", field))
		}
	}

	if status < http.StatusInternalServerError {
		logger.Warn(appErr.Message, fields...)
		abortWith(c, appErr)
		return
	}

	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		fields = append(fields, zap.Strings("stack", stacker.Stack()))
	}
	logger.Error(appErr.Message, fields...)

	if appErr.Code == errors.CodeInternal {
		appErr = errors.Wrap(err, errors.CodeInternal, "internal server error")
	}
	abortWith(c, appErr)
}
