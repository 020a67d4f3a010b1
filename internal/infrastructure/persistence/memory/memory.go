// Package memory implements the repository ports in process memory, for
// tests and local development. The same guards the Postgres adapter gets
// from its transactions are provided here by a single mutex.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/openmarket/marketplace-service/internal/application/ports"
	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
)

type Store struct {
	mu           sync.Mutex
	users        map[string]*market.User
	items        map[string]*market.Item
	interests    map[string]map[string]bool // itemID -> userID -> present
	transactions map[string]*market.Transaction
	itemOrder    []string
}

var (
	_ ports.UserRepository        = (*Store)(nil)
	_ ports.ItemRepository        = (*Store)(nil)
	_ ports.InterestRepository    = (*Store)(nil)
	_ ports.TransactionRepository = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		users:        make(map[string]*market.User),
		items:        make(map[string]*market.Item),
		interests:    make(map[string]map[string]bool),
		transactions: make(map[string]*market.Transaction),
	}
}

// --- UserRepository ---

func (s *Store) CreateUser(ctx context.Context, user *market.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return domainErrors.ErrUsernameTaken
		}
	}

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*market.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*market.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// --- ItemRepository ---

func (s *Store) CreateItem(ctx context.Context, item *market.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *item
	copied.Images = append([]string(nil), item.Images...)
	s.items[item.ID] = &copied
	s.itemOrder = append(s.itemOrder, item.ID)
	return nil
}

func (s *Store) GetItemByID(ctx context.Context, id string) (*market.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getItemLocked(id)
}

func (s *Store) GetAllItems(ctx context.Context) ([]*market.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*market.Item, 0, len(s.items))
	for _, id := range s.itemOrder {
		if item, ok := s.items[id]; ok {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (s *Store) GetItemsByOwner(ctx context.Context, ownerID string) ([]*market.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []*market.Item
	for _, id := range s.itemOrder {
		if item, ok := s.items[id]; ok && item.OwnerID == ownerID {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (s *Store) SearchItems(ctx context.Context, term string) ([]*market.Item, error) {
	if term == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(term)
	var items []*market.Item
	for _, id := range s.itemOrder {
		item, ok := s.items[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.ShortDesc), needle) ||
			strings.Contains(strings.ToLower(item.LongDesc), needle) {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (s *Store) UpdateItem(ctx context.Context, id string, patch market.ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domainErrors.ErrItemNotFound
	}
	if item.Sold {
		return domainErrors.ErrSoldItemImmutable
	}
	patch.ApplyTo(item)
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return domainErrors.ErrItemNotFound
	}
	delete(s.items, id)
	delete(s.interests, id)
	return nil
}

func (s *Store) GetImages(ctx context.Context, itemIDs []string) (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	images := make(map[string][]string, len(itemIDs))
	for _, id := range itemIDs {
		if item, ok := s.items[id]; ok && len(item.Images) > 0 {
			images[id] = append([]string(nil), item.Images...)
		}
	}
	return images, nil
}

// --- InterestRepository ---

func (s *Store) AddInterest(ctx context.Context, itemID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairs, ok := s.interests[itemID]
	if !ok {
		pairs = make(map[string]bool)
		s.interests[itemID] = pairs
	}
	if pairs[userID] {
		return false, nil
	}
	pairs[userID] = true
	return true, nil
}

func (s *Store) RemoveInterest(ctx context.Context, itemID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairs, ok := s.interests[itemID]
	if !ok || !pairs[userID] {
		return false, nil
	}
	delete(pairs, userID)
	return true, nil
}

func (s *Store) IsInterested(ctx context.Context, itemID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.interests[itemID][userID], nil
}

func (s *Store) CountForItem(ctx context.Context, itemID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.interests[itemID]), nil
}

func (s *Store) CountForItems(ctx context.Context, itemIDs []string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int, len(itemIDs))
	for _, id := range itemIDs {
		if n := len(s.interests[id]); n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (s *Store) CountForUser(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, pairs := range s.interests {
		if pairs[userID] {
			count++
		}
	}
	return count, nil
}

// --- TransactionRepository ---

func (s *Store) MarkItemAsSold(ctx context.Context, txn *market.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[txn.ItemID]
	if !ok {
		return domainErrors.ErrItemNotFound
	}
	if item.Sold {
		return domainErrors.ErrItemAlreadySold
	}

	item.MarkAsSold(txn.BuyerID, txn.CreatedAt)
	copied := *txn
	s.transactions[txn.ItemID] = &copied
	return nil
}

func (s *Store) IsSold(ctx context.Context, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return false, domainErrors.ErrItemNotFound
	}
	return item.Sold, nil
}

func (s *Store) GetTransactionByItem(ctx context.Context, itemID string) (*market.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[itemID]
	if !ok {
		return nil, domainErrors.ErrItemNotFound
	}
	copied := *txn
	return &copied, nil
}

// Transactions returns every recorded transaction, ordered by item id. Test
// helper only.
func (s *Store) Transactions() []*market.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := make([]*market.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		copied := *txn
		txns = append(txns, &copied)
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].ItemID < txns[j].ItemID })
	return txns
}

func (s *Store) getItemLocked(id string) (*market.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainErrors.ErrItemNotFound
	}
	copied := *item
	copied.Images = append([]string(nil), item.Images...)
	return &copied, nil
}
