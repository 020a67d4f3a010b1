package market

import (
	"time"
)

// Transaction binds a buyer to a sold item. At most one transaction ever
// exists per item; it is written in the same unit of work that flips the
// item's sold flag.
type Transaction struct {
	ID         string
	ItemID     string
	BuyerID    string
	SellerID   string
	PriceCents int64
	CreatedAt  time.Time
}

func NewTransaction(id, itemID, buyerID, sellerID string, priceCents int64, at time.Time) *Transaction {
	return &Transaction{
		ID:         id,
		ItemID:     itemID,
		BuyerID:    buyerID,
		SellerID:   sellerID,
		PriceCents: priceCents,
		CreatedAt:  at,
	}
}
