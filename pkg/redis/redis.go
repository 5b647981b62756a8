package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TrainingLog/config"

	"github.com/redis/go-redis/v9"
)

var (
	global   *redis.Client
	globalMu sync.RWMutex
)

// Client 返回全局 Redis 客户端（未初始化时为 nil，调用方需降级）
func Client() *redis.Client {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// ReplaceGlobal 设置全局 Redis 客户端
func ReplaceGlobal(c *redis.Client) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = c
}

// Build 根据配置创建 Redis 客户端并探活
func Build(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}
