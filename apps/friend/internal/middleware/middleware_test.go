package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"TrainingLog/consts"
	rediskey "TrainingLog/consts/redisKey"
	"TrainingLog/pkg/ctxmeta"
	"TrainingLog/pkg/logger"
	"TrainingLog/pkg/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var middlewareLoggerOnce sync.Once

func initMiddlewareTestLogger() {
	middlewareLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
		gin.SetMode(gin.TestMode)
	})
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func decodeCode(t *testing.T, w *httptest.ResponseRecorder) int32 {
	t.Helper()
	var body struct {
		Code int32 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func serve(r *gin.Engine, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Redis(t *testing.T) {
	initMiddlewareTestLogger()
	mr, client := newMiniRedisClient(t)

	limiter := NewRateLimiter(client, 0.001, 2, 0)
	ctx := context.Background()
	assert.True(t, limiter.Allow(ctx, "k1"))
	assert.True(t, limiter.Allow(ctx, "k1"))
	assert.False(t, limiter.Allow(ctx, "k1"))
	// 不同 key 互不影响
	assert.True(t, limiter.Allow(ctx, "k2"))

	assert.True(t, mr.Exists("k1"))
	assert.Greater(t, mr.TTL("k1"), time.Duration(0))
}

func TestRateLimiter_LocalFallback(t *testing.T) {
	initMiddlewareTestLogger()

	t.Run("no redis client", func(t *testing.T) {
		limiter := NewRateLimiter(nil, 0.001, 2, 10)
		ctx := context.Background()
		assert.True(t, limiter.Allow(ctx, "k"))
		assert.True(t, limiter.Allow(ctx, "k"))
		assert.False(t, limiter.Allow(ctx, "k"))
		assert.True(t, limiter.Allow(ctx, "other"))
	})

	t.Run("redis down", func(t *testing.T) {
		mr, client := newMiniRedisClient(t)
		mr.Close()

		limiter := NewRateLimiter(client, 0.001, 1, 10)
		ctx := context.Background()
		assert.True(t, limiter.Allow(ctx, "k"))
		assert.False(t, limiter.Allow(ctx, "k"))
	})
}

func TestIPRateLimitMiddleware(t *testing.T) {
	initMiddlewareTestLogger()
	mr, client := newMiniRedisClient(t)
	_, err := mr.SAdd(rediskey.BlacklistIPKey(), "10.0.0.9")
	require.NoError(t, err)

	r := gin.New()
	r.Use(ClientIPMiddleware(), IPRateLimitMiddleware(NewRateLimiter(client, 0.001, 1, 0)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := serve(r, http.MethodGet, "/ping", map[string]string{"X-Real-IP": "10.0.0.9"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, consts.CodePermissionDeny, decodeCode(t, w))

	w = serve(r, http.MethodGet, "/ping", map[string]string{"X-Real-IP": "10.0.0.1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/ping", map[string]string{"X-Real-IP": "10.0.0.1"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, consts.CodeTooManyRequests, decodeCode(t, w))

	w = serve(r, http.MethodGet, "/ping", map[string]string{"X-Forwarded-For": "10.0.0.2, 172.16.0.1"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware(t *testing.T) {
	initMiddlewareTestLogger()

	var seenUserID string
	r := gin.New()
	r.Use(JWTAuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		ctx := NewContextWithGin(c)
		seenUserID = ctxmeta.UserID(ctx)
		c.String(http.StatusOK, "ok")
	})

	w := serve(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, consts.CodeUnauthorized, decodeCode(t, w))

	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, consts.CodeInvalidToken, decodeCode(t, w))

	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer not-a-jwt"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, consts.CodeInvalidToken, decodeCode(t, w))

	token, err := util.GenerateToken("u42")
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u42", seenUserID)
}

func TestUserRateLimitMiddleware(t *testing.T) {
	initMiddlewareTestLogger()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set(ginKeyUserID, uid)
		}
		c.Next()
	})
	r.Use(UserRateLimitMiddleware(NewRateLimiter(nil, 0.001, 1, 0)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", map[string]string{"X-Test-User": "a"}).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/ping", map[string]string{"X-Test-User": "a"}).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", map[string]string{"X-Test-User": "b"}).Code)
	// 未认证请求不限流
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)
}

func TestTimeoutMiddleware(t *testing.T) {
	initMiddlewareTestLogger()

	r := gin.New()
	r.Use(TimeoutMiddleware(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/slow", nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, consts.CodeTimeoutError, decodeCode(t, w))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/fast", nil).Code)
}

func TestGinRecovery(t *testing.T) {
	initMiddlewareTestLogger()

	r := gin.New()
	r.Use(GinRecovery(true))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, consts.CodeInternalError, decodeCode(t, w))
}

func TestCorsMiddleware(t *testing.T) {
	initMiddlewareTestLogger()

	r := gin.New()
	r.Use(CorsMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/x", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
