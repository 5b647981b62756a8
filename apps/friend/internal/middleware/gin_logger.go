package middleware

import (
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"TrainingLog/consts"
	"TrainingLog/pkg/logger"
	"TrainingLog/pkg/result"

	"github.com/gin-gonic/gin"
)

// slowRequestThreshold 超过该耗时的请求记录告警
const slowRequestThreshold = 2 * time.Second

// GinLogger 接收 gin 框架默认的日志
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		status := c.Writer.Status()
		ctx := NewContextWithGin(c)

		// 只记录服务端错误(5xx)和慢请求,正常请求记 debug
		if status >= http.StatusInternalServerError || cost > slowRequestThreshold {
			logger.Warn(ctx, "慢请求或服务端错误",
				logger.Int("status", status),
				logger.String("method", c.Request.Method),
				logger.String("path", path),
				logger.String("query", query),
				logger.String("ip", ClientIPFromGinContext(c)),
				logger.String("user-agent", c.Request.UserAgent()),
				logger.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
				logger.Duration("cost", cost),
			)
			return
		}
		logger.Debug(ctx, "请求完成",
			logger.Int("status", status),
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.Duration("cost", cost),
		)
	}
}

// GinRecovery recover 掉项目可能出现的 panic
// stack 为 true 时记录堆栈
func GinRecovery(stack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := NewContextWithGin(c)

				// 客户端断开连接不需要堆栈
				if isBrokenPipe(err) {
					logger.Warn(ctx, "客户端连接已断开",
						logger.String("path", c.Request.URL.Path),
						logger.Any("error", err),
					)
					c.Abort()
					return
				}

				if stack {
					logger.Error(ctx, "请求处理发生 panic",
						logger.String("method", c.Request.Method),
						logger.String("path", c.Request.URL.Path),
						logger.Any("error", err),
						logger.String("stack", string(debug.Stack())),
					)
				} else {
					logger.Error(ctx, "请求处理发生 panic",
						logger.String("method", c.Request.Method),
						logger.String("path", c.Request.URL.Path),
						logger.Any("error", err),
					)
				}
				result.Abort(c, http.StatusInternalServerError, consts.CodeInternalError)
			}
		}()
		c.Next()
	}
}

func isBrokenPipe(v interface{}) bool {
	ne, ok := v.(*net.OpError)
	if !ok {
		return false
	}
	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
