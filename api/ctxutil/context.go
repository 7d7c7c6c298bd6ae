package ctxutil

import (
	"context"

	"fooddash/api/response"
	"fooddash/domain/shared"
	"fooddash/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// ActorKey gin context 中保存调用方身份的键
const ActorKey = "actor"

// WithRequestID 把请求 ID 带入 context，供 SQL 日志和业务日志关联
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}

func SetActor(ctx *gin.Context, actor shared.Actor) {
	ctx.Set(ActorKey, actor)
}

// ActorFrom 认证中间件写入的调用方，未认证返回 false
func ActorFrom(ctx *gin.Context) (shared.Actor, bool) {
	v, exists := ctx.Get(ActorKey)
	if !exists {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}
