package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotInitialized = errors.New("redis client is not initialized")

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", ErrNotInitialized
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Del 删除键
func Del(ctx context.Context, keys ...string) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Del(ctx, keys...).Err()
}
