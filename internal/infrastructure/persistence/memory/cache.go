package memory

import (
	"context"
	"sync"
	"time"

	"github.com/openmarket/marketplace-service/internal/application/ports"
)

// Cache is an in-process ports.Cache. Expirations are ignored; entries live
// until invalidated, which is close enough for tests.
type Cache struct {
	mu        sync.Mutex
	counts    map[string]int
	soldItems map[string]bool
	locks     map[string]bool
}

var _ ports.Cache = (*Cache)(nil)

func NewCache() *Cache {
	return &Cache{
		counts:    make(map[string]int),
		soldItems: make(map[string]bool),
		locks:     make(map[string]bool),
	}
}

func (c *Cache) GetInterestCount(ctx context.Context, itemID string) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	count, ok := c.counts[itemID]
	return count, ok, nil
}

func (c *Cache) SetInterestCount(ctx context.Context, itemID string, count int, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[itemID] = count
	return nil
}

func (c *Cache) IncrementInterestCount(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.counts[itemID]; ok {
		c.counts[itemID]++
	}
	return nil
}

func (c *Cache) DecrementInterestCount(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.counts[itemID]; ok {
		c.counts[itemID]--
	}
	return nil
}

func (c *Cache) InvalidateInterestCount(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.counts, itemID)
	return nil
}

func (c *Cache) AddSoldItem(ctx context.Context, itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.soldItems[itemID] = true
	return nil
}

func (c *Cache) SoldItemMaybeExists(ctx context.Context, itemID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.soldItems[itemID], nil
}

func (c *Cache) AcquireLock(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.locks, key)
	return nil
}
