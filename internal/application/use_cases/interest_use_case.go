package use_cases

import (
	"context"
	"time"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

const interestCountTTL = 5 * time.Minute

type InterestUseCase struct {
	items     ports.ItemRepository
	interests ports.InterestRepository
	cache     ports.Cache
	rules     *market.PurchaseService
	log       *logger.Logger
}

func NewInterestUseCase(
	items ports.ItemRepository,
	interests ports.InterestRepository,
	cache ports.Cache,
	log *logger.Logger,
) *InterestUseCase {
	return &InterestUseCase{
		items:     items,
		interests: interests,
		cache:     cache,
		rules:     market.NewPurchaseService(),
		log:       log,
	}
}

// AddInterestedUser records interest, idempotently. Owners cannot express
// interest in their own listing and sold items receive no new interest.
func (uc *InterestUseCase) AddInterestedUser(ctx context.Context, itemID, userID string) error {
	if itemID == "" {
		return domainErrors.ErrMissingItemID
	}

	item, err := uc.items.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := uc.rules.ValidateInterest(item, userID); err != nil {
		return err
	}

	added, err := uc.interests.AddInterest(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if !added {
		return nil
	}

	monitoring.InterestAddedTotal.Inc()
	if err := uc.cache.IncrementInterestCount(ctx, itemID); err != nil {
		uc.log.Warn("interest counter increment failed", "item_id", itemID, "error", err)
	}
	return nil
}

func (uc *InterestUseCase) RemoveInterestedUser(ctx context.Context, itemID, userID string) error {
	if itemID == "" {
		return domainErrors.ErrMissingItemID
	}
	if userID == "" {
		return domainErrors.ErrMissingUserID
	}

	removed, err := uc.interests.RemoveInterest(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}

	monitoring.InterestRemovedTotal.Inc()
	if err := uc.cache.DecrementInterestCount(ctx, itemID); err != nil {
		uc.log.Warn("interest counter decrement failed", "item_id", itemID, "error", err)
	}
	return nil
}

func (uc *InterestUseCase) IsInterested(ctx context.Context, itemID, userID string) (bool, error) {
	if itemID == "" {
		return false, domainErrors.ErrMissingItemID
	}
	if userID == "" {
		return false, domainErrors.ErrMissingUserID
	}
	return uc.interests.IsInterested(ctx, itemID, userID)
}

// NumberOfInterested reads through the counter cache. A briefly stale count
// is acceptable; the ledger stays authoritative.
func (uc *InterestUseCase) NumberOfInterested(ctx context.Context, itemID string) (int, error) {
	if itemID == "" {
		return 0, domainErrors.ErrMissingItemID
	}

	if count, ok, err := uc.cache.GetInterestCount(ctx, itemID); err == nil && ok {
		return count, nil
	} else if err != nil {
		uc.log.Warn("interest counter read failed", "item_id", itemID, "error", err)
	}

	count, err := uc.interests.CountForItem(ctx, itemID)
	if err != nil {
		return 0, err
	}

	if err := uc.cache.SetInterestCount(ctx, itemID, count, interestCountTTL); err != nil {
		uc.log.Warn("interest counter refresh failed", "item_id", itemID, "error", err)
	}
	return count, nil
}

func (uc *InterestUseCase) UserNumberInterest(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, domainErrors.ErrMissingUserID
	}
	return uc.interests.CountForUser(ctx, userID)
}
