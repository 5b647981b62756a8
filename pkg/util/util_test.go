package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("u1")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestParseTokenRejects(t *testing.T) {
	prev := currentJWTConfig()
	t.Cleanup(func() { InitJWT(prev) })

	expiredCfg := prev
	expiredCfg.TTL = -time.Minute
	InitJWT(expiredCfg)
	expired, err := GenerateToken("u1")
	require.NoError(t, err)

	otherCfg := prev
	otherCfg.Secret = "another-secret"
	InitJWT(otherCfg)
	foreign, err := GenerateToken("u1")
	require.NoError(t, err)

	InitJWT(prev)

	_, err = ParseToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
	_, err = ParseToken(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNextIDUnique(t *testing.T) {
	seen := make(map[int64]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NextID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestTraceLoggerKeepsIncomingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceLogger())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("trace_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
	assert.Equal(t, "abc", w.Header().Get(HeaderXRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Body.String())
}
