package repository

import (
	"context"
	"errors"

	"TrainingLog/config"
	rediskey "TrainingLog/consts/redisKey"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// luaDecrUnread 未读数 -1，不会减到负数；减到 0 时删除 key
//
//	KEYS[1]: 未读计数 key
//
// 返回减少后的值
var luaDecrUnread = redis.NewScript(`
local n = tonumber(redis.call('GET', KEYS[1]) or '0')
if n <= 1 then
    redis.call('DEL', KEYS[1])
    return 0
end
return redis.call('DECR', KEYS[1])
`)

// notifyRepositoryImpl 好友邀请未读计数
// redisClient 为 nil 时全部操作降级为空操作。
type notifyRepositoryImpl struct {
	redisClient *redis.Client
	breaker     *gobreaker.CircuitBreaker
}

// NewNotifyRepository 创建未读计数仓储实例
func NewNotifyRepository(redisClient *redis.Client, breakerCfg config.BreakerConfig) INotifyRepository {
	return &notifyRepositoryImpl{
		redisClient: redisClient,
		breaker:     newRedisBreaker("redis-notify", breakerCfg),
	}
}

// IncrUnreadInvitation 未读数 +1 并续期
func (r *notifyRepositoryImpl) IncrUnreadInvitation(ctx context.Context, userID string) error {
	if r.redisClient == nil {
		return nil
	}
	key := rediskey.InvitationUnreadKey(userID)
	_, err := r.breaker.Execute(func() (interface{}, error) {
		pipe := r.redisClient.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, getRandomExpireTime(rediskey.InvitationUnreadTTL))
		_, err := pipe.Exec(ctx)
		return nil, err
	})
	return WrapRedisError(err)
}

// DecrUnreadInvitation 邀请被接受、拒绝或撤回时未读数 -1，最小为 0
func (r *notifyRepositoryImpl) DecrUnreadInvitation(ctx context.Context, userID string) error {
	if r.redisClient == nil {
		return nil
	}
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return luaDecrUnread.Run(ctx, r.redisClient, []string{rediskey.InvitationUnreadKey(userID)}).Int64()
	})
	return WrapRedisError(err)
}

func (r *notifyRepositoryImpl) GetUnreadInvitationCount(ctx context.Context, userID string) (int64, error) {
	if r.redisClient == nil {
		return 0, nil
	}
	v, err := r.breaker.Execute(func() (interface{}, error) {
		return r.redisClient.Get(ctx, rediskey.InvitationUnreadKey(userID)).Int64()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, WrapRedisError(err)
	}
	return v.(int64), nil
}

func (r *notifyRepositoryImpl) ClearUnreadInvitation(ctx context.Context, userID string) error {
	if r.redisClient == nil {
		return nil
	}
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.redisClient.Del(ctx, rediskey.InvitationUnreadKey(userID)).Err()
	})
	return WrapRedisError(err)
}
