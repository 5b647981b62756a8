package middleware

import (
	"context"
	"net/http"
	"time"

	"TrainingLog/consts"
	rediskey "TrainingLog/consts/redisKey"
	"TrainingLog/pkg/logger"
	"TrainingLog/pkg/result"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// ==================== Redis 令牌桶 Lua 脚本 ====================

// luaTokenBucket 原子性地更新令牌桶并判断是否允许通过
//
//	KEYS[1]: 限流 key
//	ARGV[1]: 当前时间戳 (毫秒)
//	ARGV[2]: 令牌桶容量
//	ARGV[3]: 每秒产生的令牌数
//	ARGV[4]: 每次请求消耗的令牌数
//
// 返回 1 允许通过，0 令牌不足
var luaTokenBucket = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local info = redis.call('HMGET', key, 'tokens', 'last_time')
local current_tokens = tonumber(info[1])
local last_time = tonumber(info[2])

if current_tokens == nil then
    current_tokens = capacity
end
if last_time == nil then
    last_time = now
end

-- 补充令牌: (时间差ms * 速率) / 1000
local time_diff = math.max(0, now - last_time)
local new_tokens = math.floor((time_diff * rate) / 1000)
if new_tokens > 0 then
    current_tokens = math.min(capacity, current_tokens + new_tokens)
    last_time = now
end

local allowed = 0
if current_tokens >= requested then
    current_tokens = current_tokens - requested
    allowed = 1
end

redis.call('HSET', key, 'tokens', current_tokens, 'last_time', last_time)

-- 过期时间：桶填满所需时间 * 2，至少 60 秒
local fill_time = math.ceil(capacity / rate)
local ttl = math.max(60, fill_time * 2)
redis.call('EXPIRE', key, ttl)

return allowed
`)

// redisCheckTimeout Redis 限流检查的独立短超时，防止 Redis 响应慢拖死请求
const redisCheckTimeout = 50 * time.Millisecond

const defaultLocalKeyCap = 10000

// ==================== 限流器 ====================

// RateLimiter Redis 令牌桶限流器。
// Redis 不可用时降级到进程内令牌桶（按 key 缓存在 LRU 中），而不是直接放行。
type RateLimiter struct {
	client *redis.Client
	rate   float64 // 每秒产生的令牌数
	burst  int     // 令牌桶容量
	local  *lru.Cache[string, *rate.Limiter]
}

// NewRateLimiter 创建限流器，client 为 nil 时只使用本地令牌桶
func NewRateLimiter(client *redis.Client, r float64, burst, localKeyCap int) *RateLimiter {
	if localKeyCap <= 0 {
		localKeyCap = defaultLocalKeyCap
	}
	// size > 0 时不会返回错误
	local, _ := lru.New[string, *rate.Limiter](localKeyCap)
	return &RateLimiter{
		client: client,
		rate:   r,
		burst:  burst,
		local:  local,
	}
}

// Allow 检查 key 是否允许通过
func (l *RateLimiter) Allow(ctx context.Context, key string) bool {
	if l.client == nil {
		return l.allowLocal(key)
	}

	redisCtx, cancel := context.WithTimeout(ctx, redisCheckTimeout)
	defer cancel()

	allowed, err := luaTokenBucket.Run(redisCtx, l.client, []string{key},
		time.Now().UnixMilli(), l.burst, l.rate, 1).Int64()
	if err != nil {
		logger.Warn(ctx, "Redis 限流检查失败，降级为本地限流",
			logger.String("key", key),
			logger.ErrorField("error", err),
		)
		return l.allowLocal(key)
	}
	return allowed == 1
}

func (l *RateLimiter) allowLocal(key string) bool {
	limiter, ok := l.local.Get(key)
	if !ok {
		fresh := rate.NewLimiter(rate.Limit(l.rate), l.burst)
		if prev, found, _ := l.local.PeekOrAdd(key, fresh); found {
			limiter = prev
		} else {
			limiter = fresh
		}
	}
	return limiter.Allow()
}

// CheckBlacklist 检查 IP 是否在黑名单 Set 中，Redis 不可用时视为不在
func CheckBlacklist(ctx context.Context, client *redis.Client, blacklistKey, ip string) bool {
	if client == nil {
		return false
	}
	redisCtx, cancel := context.WithTimeout(ctx, redisCheckTimeout)
	defer cancel()

	exists, err := client.SIsMember(redisCtx, blacklistKey, ip).Result()
	if err != nil {
		logger.Warn(ctx, "Redis 黑名单检查失败，降级放行",
			logger.String("ip", ip),
			logger.ErrorField("error", err),
		)
		return false
	}
	return exists
}

// ==================== 限流中间件 ====================

// IPRateLimitMiddleware IP 级别限流：先查黑名单，再走令牌桶
func IPRateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := NewContextWithGin(c)

		// 1. 获取客户端 IP
		ip, ok := GetClientIPSafe(c)
		if !ok {
			logger.Warn(ctx, "无法获取客户端 IP，跳过限流检查",
				logger.String("path", c.Request.URL.Path),
			)
			c.Next()
			return
		}

		// 2. 检查 IP 黑名单
		if CheckBlacklist(ctx, limiter.client, rediskey.BlacklistIPKey(), ip) {
			logger.Warn(ctx, "IP 在黑名单中，拒绝访问",
				logger.String("ip", ip),
				logger.String("path", c.Request.URL.Path),
			)
			result.Abort(c, http.StatusForbidden, consts.CodePermissionDeny)
			return
		}

		// 3. 令牌桶
		if !limiter.Allow(ctx, rediskey.IPRateLimitKey(ip)) {
			logger.Warn(ctx, "IP 请求被限流",
				logger.String("ip", ip),
				logger.String("path", c.Request.URL.Path),
				logger.String("method", c.Request.Method),
			)
			result.Abort(c, http.StatusTooManyRequests, consts.CodeTooManyRequests)
			return
		}

		c.Next()
	}
}

// UserRateLimitMiddleware 用户级别限流，需要在 JWTAuthMiddleware 之后使用
func UserRateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := NewContextWithGin(c)

		userID, ok := GetUserID(c)
		if !ok {
			// 未认证请求，交给认证中间件处理
			c.Next()
			return
		}

		if !limiter.Allow(ctx, rediskey.UserRateLimitKey(userID)) {
			logger.Warn(ctx, "用户请求被限流",
				logger.String("path", c.Request.URL.Path),
				logger.String("method", c.Request.Method),
			)
			result.Abort(c, http.StatusTooManyRequests, consts.CodeTooManyRequests)
			return
		}

		c.Next()
	}
}
