package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/mileage-cart/pkg/logger"
)

// CartTotalCache 缓存用户购物车激活条目的总里程
// 读失败当作未命中，写失败只记日志，数据库始终是准的
type CartTotalCache interface {
	Get(ctx context.Context, userID int64) (total int64, ok bool)
	Set(ctx context.Context, userID, total int64)
	Invalidate(ctx context.Context, userID int64)
}

// RedisCartTotalCache 基于 Redis 的实现，key: cart:total:{userID}
type RedisCartTotalCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartTotalCache(client *redis.Client, ttl time.Duration) *RedisCartTotalCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCartTotalCache{client: client, ttl: ttl}
}

func cartTotalKey(userID int64) string { return fmt.Sprintf("cart:total:%d", userID) }

func (c *RedisCartTotalCache) Get(ctx context.Context, userID int64) (int64, bool) {
	val, err := c.client.Get(ctx, cartTotalKey(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("cart total cache get failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return 0, false
	}
	total, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return total, true
}

func (c *RedisCartTotalCache) Set(ctx context.Context, userID, total int64) {
	if err := c.client.Set(ctx, cartTotalKey(userID), total, c.ttl).Err(); err != nil {
		logger.Warn("cart total cache set failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (c *RedisCartTotalCache) Invalidate(ctx context.Context, userID int64) {
	if err := c.client.Del(ctx, cartTotalKey(userID)).Err(); err != nil {
		logger.Warn("cart total cache invalidate failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// NopCartTotalCache 未配置 Redis 时使用，每次都未命中
type NopCartTotalCache struct{}

func (NopCartTotalCache) Get(context.Context, int64) (int64, bool) { return 0, false }
func (NopCartTotalCache) Set(context.Context, int64, int64)        {}
func (NopCartTotalCache) Invalidate(context.Context, int64)        {}
