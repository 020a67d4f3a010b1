package ports

import (
	"context"

	"github.com/openmarket/marketplace-service/internal/domain/market"
)

type UserRepository interface {
	// CreateUser persists a new account. The username uniqueness check and
	// the insert are one atomic operation; a duplicate yields
	// errors.ErrUsernameTaken.
	CreateUser(ctx context.Context, user *market.User) error
	GetUserByUsername(ctx context.Context, username string) (*market.User, error)
	GetUserByID(ctx context.Context, id string) (*market.User, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *market.Item) error
	GetItemByID(ctx context.Context, id string) (*market.Item, error)
	GetAllItems(ctx context.Context) ([]*market.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID string) ([]*market.Item, error)
	// SearchItems matches term case-insensitively against title, short and
	// long description, in insertion order. An empty term matches nothing.
	SearchItems(ctx context.Context, term string) ([]*market.Item, error)
	// UpdateItem applies a partial update, guarded so it never touches a
	// sold item: errors.ErrSoldItemImmutable if the item sold meanwhile.
	UpdateItem(ctx context.Context, id string, patch market.ItemPatch) error
	// DeleteItem removes the item together with its image references and
	// interest rows.
	DeleteItem(ctx context.Context, id string) error
	GetImages(ctx context.Context, itemIDs []string) (map[string][]string, error)
}

type InterestRepository interface {
	// AddInterest records the pair, reporting whether it was newly added.
	// Re-adding an existing pair is a no-op.
	AddInterest(ctx context.Context, itemID, userID string) (bool, error)
	RemoveInterest(ctx context.Context, itemID, userID string) (bool, error)
	IsInterested(ctx context.Context, itemID, userID string) (bool, error)
	CountForItem(ctx context.Context, itemID string) (int, error)
	CountForItems(ctx context.Context, itemIDs []string) (map[string]int, error)
	CountForUser(ctx context.Context, userID string) (int, error)
}

type TransactionRepository interface {
	// MarkItemAsSold flips the item's sold flag and writes the transaction
	// record as one atomic unit. If the item was sold concurrently it fails
	// with errors.ErrItemAlreadySold and writes nothing.
	MarkItemAsSold(ctx context.Context, txn *market.Transaction) error
	IsSold(ctx context.Context, itemID string) (bool, error)
	GetTransactionByItem(ctx context.Context, itemID string) (*market.Transaction, error)
}
