package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix 所有环境变量的统一前缀，例如 TRAININGLOG_MYSQL_DSN。
const EnvPrefix = "TRAININGLOG_"

// AppConfig 进程级配置汇总
type AppConfig struct {
	Server    ServerConfig    `envPrefix:"SERVER_"`
	Logger    LoggerConfig    `envPrefix:"LOG_"`
	MySQL     MySQLConfig     `envPrefix:"MYSQL_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	Kafka     KafkaConfig     `envPrefix:"KAFKA_"`
	Async     AsyncConfig     `envPrefix:"ASYNC_"`
	JWT       JWTConfig       `envPrefix:"JWT_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Breaker   BreakerConfig   `envPrefix:"BREAKER_"`
}

// Default 返回全部默认配置。
func Default() AppConfig {
	return AppConfig{
		Server:    DefaultServerConfig(),
		Logger:    DefaultLoggerConfig(),
		MySQL:     DefaultMySQLConfig(),
		Redis:     DefaultRedisConfig(),
		Kafka:     DefaultKafkaConfig(),
		Async:     DefaultAsyncConfig(),
		JWT:       DefaultJWTConfig(),
		RateLimit: DefaultRateLimitConfig(),
		Breaker:   DefaultBreakerConfig(),
	}
}

// Load 在默认配置之上叠加环境变量。
// envFiles 为可选的 .env 文件，不存在时忽略；已存在的环境变量不会被覆盖。
func Load(envFiles ...string) (AppConfig, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	cfg := Default()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
