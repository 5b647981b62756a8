package router

import (
	"net/http"
	"time"

	"TrainingLog/apps/friend/internal/middleware"
	v1 "TrainingLog/apps/friend/internal/router/v1"
	"TrainingLog/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options 路由依赖；限流器为 nil 时不启用对应限流
type Options struct {
	RequestTimeout time.Duration
	IPLimiter      *middleware.RateLimiter
	UserLimiter    *middleware.RateLimiter
}

// InitRouter 初始化路由
func InitRouter(opts Options, friendHandler *v1.FriendHandler, userHandler *v1.UserHandler, resultHandler *v1.ResultHandler) *gin.Engine {
	r := gin.New()

	// 恢复中间件
	r.Use(middleware.GinRecovery(true))

	// 追踪中间件 (生成 trace_id)
	r.Use(util.TraceLogger())

	// 客户端 IP 中间件
	r.Use(middleware.ClientIPMiddleware())

	// 日志中间件
	r.Use(middleware.GinLogger())

	// Prometheus 监控中间件
	r.Use(middleware.PrometheusMiddleware())

	// 跨域中间件
	r.Use(middleware.CorsMiddleware())

	// 健康检查（无需认证）
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Prometheus 指标暴露接口
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	if opts.IPLimiter != nil {
		api.Use(middleware.IPRateLimitMiddleware(opts.IPLimiter))
	}
	api.Use(middleware.JWTAuthMiddleware())
	if opts.UserLimiter != nil {
		api.Use(middleware.UserRateLimitMiddleware(opts.UserLimiter))
	}
	api.Use(middleware.TimeoutMiddleware(opts.RequestTimeout))
	{
		friends := api.Group("/friends")
		{
			friends.GET("", friendHandler.ListFriends)
			friends.GET("/invitations-for", friendHandler.InvitationsFor)
			friends.GET("/invitations-of", friendHandler.InvitationsOf)
			friends.GET("/invitations-for/unread", friendHandler.UnreadCount)
			friends.DELETE("/invitations-for/unread", friendHandler.ClearUnread)

			friends.POST("/:userId/invite", friendHandler.Invite)
			friends.PUT("/:userId/accept", friendHandler.Accept)
			friends.DELETE("/:userId/refuse", friendHandler.Refuse)
			friends.DELETE("/:userId/cancel", friendHandler.Cancel)
			friends.DELETE("/:userId/remove", friendHandler.Remove)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:userId/relationship", userHandler.GetRelationship)
		}

		api.GET("/results", resultHandler.ListResults)
	}

	return r
}
