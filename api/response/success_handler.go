package response

import (
	"net/http"

	"fooddash/pkg/errors"

	"github.com/gin-gonic/gin"
)

func HandleSuccess(c *gin.Context, data interface{}, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: requestID,
	})
}

func HandleCreated(c *gin.Context, data interface{}, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: requestID,
	})
}

func HandlePaginated(c *gin.Context, data interface{}, pagination Pagination, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusOK, &PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Message:    message,
		Code:       http.StatusOK,
		RequestID:  requestID,
	})
}

// HandleUnauthorized 令牌缺失或无效
func HandleUnauthorized(c *gin.Context, message string) {
	abortWith(c, errors.Unauthorized(message))
}

// HandleTooManyRequests 触发限流
func HandleTooManyRequests(c *gin.Context, message string) {
	abortWith(c, errors.TooManyRequests(message))
}

// HandleRouteNotFound 未注册的路径也返回统一信封
func HandleRouteNotFound(c *gin.Context) {
	abortWith(c, errors.New(errors.CodeNotFound, "route "+c.Request.Method+" "+c.Request.URL.Path+" not found"))
}

// HandleInternal 兜底的 500 响应，不暴露内部细节
func HandleInternal(c *gin.Context) {
	abortWith(c, errors.Internal("internal server error"))
}

func abortWith(c *gin.Context, appErr *errors.AppError) {
	status := appErr.HTTPStatusCode()
	c.AbortWithStatusJSON(status, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   appErr.Message,
		Code:      status,
		RequestID: getRequestID(c),
	})
}
