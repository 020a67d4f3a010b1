package use_cases

import (
	"context"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	"github.com/openmarket/marketplace-service/internal/domain/market"
	"github.com/openmarket/marketplace-service/internal/pkg/clock"
	"github.com/openmarket/marketplace-service/internal/pkg/generator"
	"github.com/openmarket/marketplace-service/internal/pkg/logger"
)

// Facade is the surface the transport layer calls. Every operation takes the
// authenticated actor explicitly; no session state lives below this line.
type Facade struct {
	accounts *AccountsUseCase
	catalog  *CatalogUseCase
	interest *InterestUseCase
	purchase *PurchaseUseCase
}

func NewFacade(
	users ports.UserRepository,
	items ports.ItemRepository,
	interests ports.InterestRepository,
	txns ports.TransactionRepository,
	cache ports.Cache,
	notifier ports.Notifier,
	images ports.ImageStore,
	clk clock.Clock,
	log *logger.Logger,
) *Facade {
	ids := generator.NewIDGenerator()
	return &Facade{
		accounts: NewAccountsUseCase(users, ids, clk, log),
		catalog:  NewCatalogUseCase(items, interests, images, ids, clk, log),
		interest: NewInterestUseCase(items, interests, cache, log),
		purchase: NewPurchaseUseCase(items, txns, users, cache, notifier, ids, clk, log),
	}
}

func (f *Facade) Register(ctx context.Context, username, email, paypal, password string) (string, error) {
	return f.accounts.Register(ctx, username, email, paypal, password)
}

func (f *Facade) Login(ctx context.Context, username, password string) (string, error) {
	return f.accounts.Login(ctx, username, password)
}

func (f *Facade) GetUserDetails(ctx context.Context, userID string) (*market.User, error) {
	return f.accounts.GetDetails(ctx, userID)
}

func (f *Facade) AddItem(ctx context.Context, actorID, title string, priceCents int64, shortDesc, longDesc string, imageRefs []string) (string, error) {
	return f.catalog.AddItem(ctx, actorID, title, priceCents, shortDesc, longDesc, imageRefs)
}

func (f *Facade) GetItemDetails(ctx context.Context, itemID string) (*market.Item, error) {
	return f.catalog.GetDetails(ctx, itemID)
}

func (f *Facade) UpdateItem(ctx context.Context, actorID, itemID string, patch market.ItemPatch) error {
	return f.catalog.UpdateItem(ctx, actorID, itemID, patch)
}

func (f *Facade) DeleteItem(ctx context.Context, actorID, itemID string) error {
	return f.catalog.DeleteItem(ctx, actorID, itemID)
}

func (f *Facade) Search(ctx context.Context, term string) ([]*market.Item, error) {
	return f.catalog.Search(ctx, term)
}

func (f *Facade) SearchWithInterest(ctx context.Context, term string) (*market.Gallery, error) {
	return f.catalog.SearchWithInterest(ctx, term)
}

func (f *Facade) AllItemsWithInterest(ctx context.Context) (*market.Gallery, error) {
	return f.catalog.AllItemsWithInterest(ctx)
}

func (f *Facade) ItemsByOwner(ctx context.Context, ownerID string) ([]*market.Item, error) {
	return f.catalog.ItemsByOwner(ctx, ownerID)
}

func (f *Facade) OwnerOf(ctx context.Context, itemID string) (string, error) {
	return f.catalog.OwnerOf(ctx, itemID)
}

func (f *Facade) GetImages(ctx context.Context, items []*market.Item) (map[string][]string, error) {
	return f.catalog.GetImages(ctx, items)
}

func (f *Facade) AddInterestedUser(ctx context.Context, itemID, actorID string) error {
	return f.interest.AddInterestedUser(ctx, itemID, actorID)
}

func (f *Facade) RemoveInterestedUser(ctx context.Context, itemID, actorID string) error {
	return f.interest.RemoveInterestedUser(ctx, itemID, actorID)
}

func (f *Facade) IsInterested(ctx context.Context, itemID, actorID string) (bool, error) {
	return f.interest.IsInterested(ctx, itemID, actorID)
}

func (f *Facade) NumberOfInterested(ctx context.Context, itemID string) (int, error) {
	return f.interest.NumberOfInterested(ctx, itemID)
}

func (f *Facade) UserNumberInterest(ctx context.Context, userID string) (int, error) {
	return f.interest.UserNumberInterest(ctx, userID)
}

func (f *Facade) IsSold(ctx context.Context, itemID string) (bool, error) {
	return f.purchase.IsSold(ctx, itemID)
}

func (f *Facade) Purchase(ctx context.Context, itemID, actorID string) (*market.Transaction, error) {
	return f.purchase.Purchase(ctx, itemID, actorID)
}

func (f *Facade) GetTransaction(ctx context.Context, itemID string) (*market.Transaction, error) {
	return f.purchase.GetTransaction(ctx, itemID)
}

func (f *Facade) SendEnquiry(ctx context.Context, itemID, actorID, subject, body string, offerCents int64) error {
	return f.purchase.SendEnquiry(ctx, itemID, actorID, subject, body, offerCents)
}
