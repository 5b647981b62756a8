package middleware

import (
	"context"

	"TrainingLog/pkg/ctxmeta"

	"github.com/gin-gonic/gin"
)

const (
	ginKeyTraceID  = "trace_id"
	ginKeyUserID   = "user_id"
	ginKeyClientIP = "client_ip"
)

// NewContextWithGin 从 gin.Context 创建包含 trace_id、user_id、client_ip 的 context.Context
// 用于把请求元数据传递到 service 层与日志系统
func NewContextWithGin(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if traceID := c.GetString(ginKeyTraceID); traceID != "" {
		ctx = ctxmeta.WithTraceID(ctx, traceID)
	}
	if userID := c.GetString(ginKeyUserID); userID != "" {
		ctx = ctxmeta.WithUserID(ctx, userID)
	}
	if clientIP := c.GetString(ginKeyClientIP); clientIP != "" {
		ctx = ctxmeta.WithClientIP(ctx, clientIP)
	}
	return ctx
}

// GetUserID 从 Context 中获取当前登录用户 id
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ginKeyUserID)
	return userID, userID != ""
}
