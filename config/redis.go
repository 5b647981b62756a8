package config

import "time"

// RedisConfig Redis 配置
// Addr 为空时视为未启用 Redis，相关功能降级。
type RedisConfig struct {
	Addr         string        `json:"addr" env:"ADDR"`
	Password     string        `json:"password" env:"PASSWORD"`
	DB           int           `json:"db" env:"DB"`
	PoolSize     int           `json:"poolSize" env:"POOL_SIZE"`
	DialTimeout  time.Duration `json:"dialTimeout" env:"DIAL_TIMEOUT"`
	ReadTimeout  time.Duration `json:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `json:"writeTimeout" env:"WRITE_TIMEOUT"`
}

// DefaultRedisConfig 返回本地开发的默认配置。
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         "127.0.0.1:6379",
		DB:           0,
		PoolSize:     50,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

// BreakerConfig 熔断器配置（保护 Redis 等旁路依赖）
type BreakerConfig struct {
	MaxRequests  uint32        `json:"maxRequests" env:"MAX_REQUESTS"`   // 半开状态允许通过的请求数
	Interval     time.Duration `json:"interval" env:"INTERVAL"`          // 闭合状态统计窗口
	Timeout      time.Duration `json:"timeout" env:"TIMEOUT"`            // 打开状态持续时间
	MinRequests  uint32        `json:"minRequests" env:"MIN_REQUESTS"`   // 触发熔断的最少请求数
	FailureRatio float64       `json:"failureRatio" env:"FAILURE_RATIO"` // 触发熔断的失败率
}

// DefaultBreakerConfig 返回默认熔断配置。
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     15 * time.Second,
		Timeout:      45 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.5,
	}
}
