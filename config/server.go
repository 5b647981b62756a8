package config

import "time"

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr            string        `json:"addr" env:"ADDR"`
	Mode            string        `json:"mode" env:"MODE"` // gin 模式：debug/release/test
	RequestTimeout  time.Duration `json:"requestTimeout" env:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
	SnowflakeNode   int64         `json:"snowflakeNode" env:"SNOWFLAKE_NODE"`
}

// DefaultServerConfig 返回默认服务配置。
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		Mode:            "release",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		SnowflakeNode:   1,
	}
}

// JWTConfig Token 校验配置
// 签发由外部认证服务负责，本服务只做校验；本地调试可用 cmd/gen_token 生成。
type JWTConfig struct {
	Secret string        `json:"secret" env:"SECRET"`
	Issuer string        `json:"issuer" env:"ISSUER"`
	TTL    time.Duration `json:"ttl" env:"TTL"`
}

// DefaultJWTConfig 返回默认 JWT 配置。
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		Secret: "traininglog-dev-secret",
		Issuer: "traininglog",
		TTL:    2 * time.Hour,
	}
}

// RateLimitConfig 限流配置（令牌桶）
type RateLimitConfig struct {
	IPRate      float64 `json:"ipRate" env:"IP_RATE"`           // 每秒产生的令牌数
	IPBurst     int     `json:"ipBurst" env:"IP_BURST"`         // 令牌桶容量
	UserRate    float64 `json:"userRate" env:"USER_RATE"`
	UserBurst   int     `json:"userBurst" env:"USER_BURST"`
	LocalKeyCap int     `json:"localKeyCap" env:"LOCAL_KEY_CAP"` // 本地降级限流器最多缓存的 key 数
}

// DefaultRateLimitConfig 返回默认限流配置。
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		IPRate:      50,
		IPBurst:     100,
		UserRate:    20,
		UserBurst:   40,
		LocalKeyCap: 10000,
	}
}
