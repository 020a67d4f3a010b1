package use_cases

import (
	"context"
	"fmt"
	"time"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
	"github.com/openmarket/marketplace-service/internal/pkg/clock"
	"github.com/openmarket/marketplace-service/internal/pkg/generator"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

type PurchaseUseCase struct {
	items    ports.ItemRepository
	txns     ports.TransactionRepository
	users    ports.UserRepository
	cache    ports.Cache
	notifier ports.Notifier
	rules    *market.PurchaseService
	ids      *generator.IDGenerator
	clk      clock.Clock
	log      *logger.Logger

	lockTimeout time.Duration
}

func NewPurchaseUseCase(
	items ports.ItemRepository,
	txns ports.TransactionRepository,
	users ports.UserRepository,
	cache ports.Cache,
	notifier ports.Notifier,
	ids *generator.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		items:       items,
		txns:        txns,
		users:       users,
		cache:       cache,
		notifier:    notifier,
		rules:       market.NewPurchaseService(),
		ids:         ids,
		clk:         clk,
		log:         log,
		lockTimeout: 3 * time.Second,
	}
}

// Purchase commits the one-way Listed -> Sold transition. The repository
// flips the sold flag and writes the transaction record atomically, so of two
// racing buyers exactly one wins; the loser gets ErrItemAlreadySold. The
// per-item lock only narrows the race window, the store remains the
// authority either way.
func (uc *PurchaseUseCase) Purchase(ctx context.Context, itemID, buyerID string) (*market.Transaction, error) {
	if itemID == "" {
		return nil, domainErrors.ErrMissingItemID
	}
	if buyerID == "" {
		return nil, domainErrors.ErrMissingUserID
	}

	monitoring.PurchaseAttemptsTotal.Inc()

	item, err := uc.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := uc.rules.ValidatePurchase(item, buyerID); err != nil {
		monitoring.PurchaseFailureTotal.WithLabelValues(domainErrors.KindOf(err).String()).Inc()
		return nil, err
	}

	lockKey := fmt.Sprintf("purchase:%s", itemID)
	locked, lockErr := uc.cache.AcquireLock(ctx, lockKey, uc.lockTimeout)
	if lockErr != nil {
		uc.log.Warn("purchase lock unavailable, relying on store guard", "item_id", itemID, "error", lockErr)
	} else if !locked {
		monitoring.PurchaseFailureTotal.WithLabelValues("lock_contention").Inc()
		return nil, domainErrors.ErrPurchaseInProgress
	} else {
		defer func() {
			if err := uc.cache.ReleaseLock(ctx, lockKey); err != nil {
				uc.log.Error("failed to release purchase lock", "item_id", itemID, "error", err)
			}
		}()
	}

	txn := market.NewTransaction(uc.ids.TransactionID(), item.ID, buyerID, item.OwnerID, item.PriceCents, uc.clk.Now())
	if err := uc.txns.MarkItemAsSold(ctx, txn); err != nil {
		monitoring.PurchaseFailureTotal.WithLabelValues(domainErrors.KindOf(err).String()).Inc()
		return nil, err
	}

	monitoring.PurchaseSuccessTotal.Inc()
	uc.log.Info("item sold", "item_id", item.ID, "buyer_id", buyerID, "seller_id", item.OwnerID, "price_cents", item.PriceCents)

	// The sale is committed; everything below is best effort.
	if err := uc.cache.AddSoldItem(ctx, item.ID); err != nil {
		uc.log.Warn("failed to record sold item in cache", "item_id", item.ID, "error", err)
	}
	if err := uc.cache.InvalidateInterestCount(ctx, item.ID); err != nil {
		uc.log.Warn("failed to invalidate interest counter", "item_id", item.ID, "error", err)
	}
	uc.notifyPurchase(ctx, item, txn)

	return txn, nil
}

// IsSold serves the fast path off the sold-item filter. A negative answer may
// lag a concurrent sale by a moment, which callers tolerate; Purchase itself
// never consults it.
func (uc *PurchaseUseCase) IsSold(ctx context.Context, itemID string) (bool, error) {
	if itemID == "" {
		return false, domainErrors.ErrMissingItemID
	}

	maybe, err := uc.cache.SoldItemMaybeExists(ctx, itemID)
	if err != nil {
		uc.log.Warn("sold-item filter unavailable", "item_id", itemID, "error", err)
	} else if !maybe {
		return false, nil
	}

	return uc.txns.IsSold(ctx, itemID)
}

func (uc *PurchaseUseCase) GetTransaction(ctx context.Context, itemID string) (*market.Transaction, error) {
	if itemID == "" {
		return nil, domainErrors.ErrMissingItemID
	}
	return uc.txns.GetTransactionByItem(ctx, itemID)
}

// SendEnquiry passes a buyer-to-seller message about an item through the
// notifier, optionally carrying an offer amount.
func (uc *PurchaseUseCase) SendEnquiry(ctx context.Context, itemID, fromUserID, subject, body string, offerCents int64) error {
	if itemID == "" {
		return domainErrors.ErrMissingItemID
	}
	if fromUserID == "" {
		return domainErrors.ErrMissingUserID
	}

	item, err := uc.items.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	owner, err := uc.users.GetUserByID(ctx, item.OwnerID)
	if err != nil {
		return err
	}
	sender, err := uc.users.GetUserByID(ctx, fromUserID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Message from %s about %q:\n\n%s", sender.Username, item.Title, body)
	if offerCents > 0 {
		text += fmt.Sprintf("\n\nOffer: %d.%02d", offerCents/100, offerCents%100)
	}
	return uc.notifier.SendEmail(ctx, owner.Email, subject, text)
}

func (uc *PurchaseUseCase) notifyPurchase(ctx context.Context, item *market.Item, txn *market.Transaction) {
	seller, err := uc.users.GetUserByID(ctx, item.OwnerID)
	if err != nil {
		uc.log.Error("purchase notification skipped, seller lookup failed", "item_id", item.ID, "error", err)
		return
	}
	buyer, err := uc.users.GetUserByID(ctx, txn.BuyerID)
	if err != nil {
		uc.log.Error("purchase notification skipped, buyer lookup failed", "item_id", item.ID, "error", err)
		return
	}

	n := ports.PurchaseNotification{
		ItemID:         item.ID,
		ItemTitle:      item.Title,
		PriceCents:     txn.PriceCents,
		SellerUsername: seller.Username,
		SellerEmail:    seller.Email,
		SellerPayPal:   seller.PayPal,
		BuyerUsername:  buyer.Username,
		BuyerEmail:     buyer.Email,
	}
	if err := uc.notifier.SendPurchaseNotification(ctx, n); err != nil {
		monitoring.NotificationFailuresTotal.Inc()
		uc.log.Error("purchase notification failed", "item_id", item.ID, "error", err)
	}
}
