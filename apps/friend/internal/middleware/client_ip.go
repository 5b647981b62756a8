package middleware

import (
	"net"
	"strings"

	"TrainingLog/pkg/ctxmeta"

	"github.com/gin-gonic/gin"
)

const (
	headerXRealIP       = "X-Real-IP"
	headerXForwardedFor = "X-Forwarded-For"
)

// GetClientIP 从 Gin Context 中获取客户端真实 IP
// 优先级：X-Real-IP > X-Forwarded-For > RemoteAddr
func GetClientIP(c *gin.Context) string {
	// 1. 优先使用反向代理设置的真实 IP
	if ip := strings.TrimSpace(c.GetHeader(headerXRealIP)); ip != "" {
		return ip
	}

	// 2. 使用 X-Forwarded-For（代理链），取第一个 IP（原始客户端）
	if xff := c.GetHeader(headerXForwardedFor); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// 3. 使用 Gin 的 ClientIP 方法（包含 RemoteAddr 逻辑）
	return c.ClientIP()
}

// GetClientIPSafe 安全获取 IP（包含格式验证）
func GetClientIPSafe(c *gin.Context) (string, bool) {
	ip := ClientIPFromGinContext(c)
	if ip == "" {
		ip = GetClientIP(c)
	}
	if ip == "" || net.ParseIP(ip) == nil {
		return "", false
	}
	return ip, true
}

// ClientIPMiddleware 注入 IP 到 Context
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := GetClientIP(c)
		c.Set(ginKeyClientIP, ip)
		c.Request = c.Request.WithContext(ctxmeta.WithClientIP(c.Request.Context(), ip))
		c.Next()
	}
}

// ClientIPFromGinContext 从 Gin Context 获取 IP（便捷方法）
func ClientIPFromGinContext(c *gin.Context) string {
	return c.GetString(ginKeyClientIP)
}
