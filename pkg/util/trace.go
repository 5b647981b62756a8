package util

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderXRequestID = "X-Request-ID"

// TraceLogger 追踪中间件，生成或获取 trace_id 并存入 Gin 上下文
func TraceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 优先沿用上游（如 Nginx）传入的 X-Request-ID
		traceId := c.GetHeader(HeaderXRequestID)
		if traceId == "" {
			traceId = uuid.New().String()
		}

		c.Set("trace_id", traceId)
		// 回写响应头，客户端报障时带上
		c.Header(HeaderXRequestID, traceId)

		c.Next()
	}
}

// NewUUID 生成新的 UUID
func NewUUID() string {
	return uuid.New().String()
}
