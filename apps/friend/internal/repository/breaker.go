package repository

import (
	"context"
	"errors"

	"TrainingLog/config"
	"TrainingLog/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// newRedisBreaker 创建保护 Redis 调用的熔断器。
// redis.Nil 不是故障，不计入失败率。
func newRedisBreaker(name string, cfg config.BreakerConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(context.Background(), "熔断器状态变更",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})
}
