package middleware

import (
	"errors"
	"net/http"
	"strings"

	"TrainingLog/consts"
	"TrainingLog/pkg/result"
	"TrainingLog/pkg/util"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware JWT 认证中间件
// 从请求头中提取 Token 并验证，验证通过后将用户 id 存入 Context
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从 Header 中获取 Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// 客户端请求错误,属于正常业务流程,不记录日志
			result.Abort(c, http.StatusUnauthorized, consts.CodeUnauthorized)
			return
		}

		// 2. 验证格式: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			result.Abort(c, http.StatusUnauthorized, consts.CodeInvalidToken)
			return
		}

		// 3. 解析并验证 Token
		claims, err := util.ParseToken(parts[1])
		if err != nil {
			code := consts.CodeInvalidToken
			if errors.Is(err, util.ErrTokenExpired) {
				code = consts.CodeTokenExpired
			}
			result.Abort(c, http.StatusUnauthorized, code)
			return
		}

		// 4. 将用户信息存入 Context，供后续 Handler 使用
		c.Set(ginKeyUserID, claims.UserID)

		c.Next()
	}
}
