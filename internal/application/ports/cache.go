package ports

import (
	"context"
	"time"
)

// Cache covers the non-authoritative fast paths: interest counters, the
// sold-item filter and the per-item purchase lock. Every answer may be stale;
// the repositories stay authoritative.
type Cache interface {
	GetInterestCount(ctx context.Context, itemID string) (int, bool, error)
	SetInterestCount(ctx context.Context, itemID string, count int, expiration time.Duration) error
	IncrementInterestCount(ctx context.Context, itemID string) error
	DecrementInterestCount(ctx context.Context, itemID string) error
	InvalidateInterestCount(ctx context.Context, itemID string) error

	AddSoldItem(ctx context.Context, itemID string) error
	SoldItemMaybeExists(ctx context.Context, itemID string) (bool, error)

	AcquireLock(ctx context.Context, key string, expiration time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}
