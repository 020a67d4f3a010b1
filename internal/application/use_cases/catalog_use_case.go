package use_cases

import (
	"context"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
	"github.com/openmarket/marketplace-service/internal/infrastructure/monitoring"
	"github.com/openmarket/marketplace-service/internal/pkg/clock"
	"github.com/openmarket/marketplace-service/internal/pkg/generator"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

type CatalogUseCase struct {
	items     ports.ItemRepository
	interests ports.InterestRepository
	images    ports.ImageStore
	rules     *market.PurchaseService
	ids       *generator.IDGenerator
	clk       clock.Clock
	log       *logger.Logger
}

func NewCatalogUseCase(
	items ports.ItemRepository,
	interests ports.InterestRepository,
	images ports.ImageStore,
	ids *generator.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		items:     items,
		interests: interests,
		images:    images,
		rules:     market.NewPurchaseService(),
		ids:       ids,
		clk:       clk,
		log:       log,
	}
}

func (uc *CatalogUseCase) AddItem(ctx context.Context, ownerID, title string, priceCents int64, shortDesc, longDesc string, imageRefs []string) (string, error) {
	if err := uc.rules.ValidateListing(ownerID, title, priceCents, imageRefs); err != nil {
		return "", err
	}

	item := market.NewItem(uc.ids.ItemID(), ownerID, title, priceCents, shortDesc, longDesc, imageRefs, uc.clk.Now())
	if err := uc.items.CreateItem(ctx, item); err != nil {
		return "", err
	}

	monitoring.ItemsListedTotal.Inc()
	uc.log.Info("item listed", "item_id", item.ID, "owner_id", ownerID)
	return item.ID, nil
}

func (uc *CatalogUseCase) GetDetails(ctx context.Context, itemID string) (*market.Item, error) {
	if itemID == "" {
		return nil, domainErrors.ErrMissingItemID
	}
	return uc.items.GetItemByID(ctx, itemID)
}

// UpdateItem applies a partial edit on behalf of actorID. Only the owner may
// edit, and the repository guard rejects edits once the item is sold.
func (uc *CatalogUseCase) UpdateItem(ctx context.Context, actorID, itemID string, patch market.ItemPatch) error {
	item, err := uc.GetDetails(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.OwnedBy(actorID) {
		return domainErrors.ErrNotOwner
	}
	if patch.PriceCents != nil && *patch.PriceCents <= 0 {
		return domainErrors.ErrInvalidPrice
	}
	if patch.Title != nil && *patch.Title == "" {
		return domainErrors.ErrMissingTitle
	}
	if patch.Empty() {
		return nil
	}
	return uc.items.UpdateItem(ctx, itemID, patch)
}

// DeleteItem removes a sold listing from the gallery. Active listings cannot
// be deleted: that would yank an item out from under interested buyers.
func (uc *CatalogUseCase) DeleteItem(ctx context.Context, actorID, itemID string) error {
	item, err := uc.GetDetails(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.OwnedBy(actorID) {
		return domainErrors.ErrNotOwner
	}
	if !item.IsSold() {
		return domainErrors.ErrDeleteUnsold
	}

	if err := uc.items.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	if len(item.Images) > 0 {
		if err := uc.images.Remove(ctx, item.Images); err != nil {
			uc.log.Warn("failed to remove stored images", "item_id", itemID, "error", err)
		}
	}

	uc.log.Info("item deleted", "item_id", itemID, "owner_id", actorID)
	return nil
}

func (uc *CatalogUseCase) Search(ctx context.Context, term string) ([]*market.Item, error) {
	if term == "" {
		return nil, nil
	}
	return uc.items.SearchItems(ctx, term)
}

func (uc *CatalogUseCase) SearchWithInterest(ctx context.Context, term string) (*market.Gallery, error) {
	items, err := uc.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return uc.withInterest(ctx, items, false)
}

// AllItemsWithInterest returns every listing with its interest count. A
// catalog with zero items yields the NoListings marker rather than an empty
// list, because the two render as different views.
func (uc *CatalogUseCase) AllItemsWithInterest(ctx context.Context) (*market.Gallery, error) {
	items, err := uc.items.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &market.Gallery{NoListings: true}, nil
	}
	return uc.withInterest(ctx, items, false)
}

func (uc *CatalogUseCase) ItemsByOwner(ctx context.Context, ownerID string) ([]*market.Item, error) {
	if ownerID == "" {
		return nil, domainErrors.ErrMissingUserID
	}
	return uc.items.GetItemsByOwner(ctx, ownerID)
}

func (uc *CatalogUseCase) OwnerOf(ctx context.Context, itemID string) (string, error) {
	item, err := uc.GetDetails(ctx, itemID)
	if err != nil {
		return "", err
	}
	return item.OwnerID, nil
}

func (uc *CatalogUseCase) GetImages(ctx context.Context, items []*market.Item) (map[string][]string, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return uc.items.GetImages(ctx, ids)
}

func (uc *CatalogUseCase) withInterest(ctx context.Context, items []*market.Item, noListings bool) (*market.Gallery, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	counts, err := uc.interests.CountForItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	gallery := &market.Gallery{NoListings: noListings, Items: make([]market.ItemWithInterest, 0, len(items))}
	for _, item := range items {
		gallery.Items = append(gallery.Items, market.ItemWithInterest{
			Item:          *item,
			InterestCount: counts[item.ID],
		})
	}
	return gallery, nil
}
