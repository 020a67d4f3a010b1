package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openmarket/marketplace-service/internal/infrastructure/bloom"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

const (
	interestCountPrefix = "interest:count:"
	soldItemsBloomKey   = "bloom:sold_items"
	lockPrefix          = "lock:"
)

type Cache struct {
	client    *redis.Client
	soldItems *bloom.RedisBloomFilter
	log       *logger.Logger
}

func NewCache(conn *Connection, log *logger.Logger) *Cache {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	m, k := bloom.GetOptimalParameters(100000, 0.01)

	return &Cache{
		client:    client,
		soldItems: bloom.NewRedisBloomFilter(client, soldItemsBloomKey, m, k),
		log:       log,
	}
}

func (c *Cache) GetInterestCount(ctx context.Context, itemID string) (int, bool, error) {
	count, err := c.client.Get(ctx, interestCountPrefix+itemID).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return count, true, nil
}

func (c *Cache) SetInterestCount(ctx context.Context, itemID string, count int, expiration time.Duration) error {
	return c.client.Set(ctx, interestCountPrefix+itemID, count, expiration).Err()
}

// IncrementInterestCount bumps the counter only when it is already cached;
// creating it here would start it from zero instead of the ledger's count.
func (c *Cache) IncrementInterestCount(ctx context.Context, itemID string) error {
	return c.adjustInterestCount(ctx, itemID, 1)
}

func (c *Cache) DecrementInterestCount(ctx context.Context, itemID string) error {
	return c.adjustInterestCount(ctx, itemID, -1)
}

var adjustIfPresent = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("INCRBY", KEYS[1], ARGV[1])
end
return false
`)

func (c *Cache) adjustInterestCount(ctx context.Context, itemID string, delta int) error {
	err := adjustIfPresent.Run(ctx, c.client, []string{interestCountPrefix + itemID}, delta).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (c *Cache) InvalidateInterestCount(ctx context.Context, itemID string) error {
	return c.client.Del(ctx, interestCountPrefix+itemID).Err()
}

func (c *Cache) AddSoldItem(ctx context.Context, itemID string) error {
	return c.soldItems.Add(ctx, itemID)
}

func (c *Cache) SoldItemMaybeExists(ctx context.Context, itemID string) (bool, error) {
	return c.soldItems.Contains(ctx, itemID)
}

func (c *Cache) AcquireLock(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	acquired, err := c.client.SetNX(ctx, lockPrefix+key, "1", expiration).Result()
	if err != nil {
		monitoring.RedisLockFailureTotal.WithLabelValues(key, "redis_error").Inc()
		return false, err
	}
	if acquired {
		monitoring.RedisLockSuccessTotal.WithLabelValues(key).Inc()
	} else {
		monitoring.RedisLockFailureTotal.WithLabelValues(key, "already_locked").Inc()
	}
	return acquired, nil
}

func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	return c.client.Del(ctx, lockPrefix+key).Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unavailable: %w", err)
	}
	return nil
}
