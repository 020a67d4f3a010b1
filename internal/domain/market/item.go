package market

import (
	"time"
)

// MaxImagesPerItem caps the number of stored image references per listing.
const MaxImagesPerItem = 3

type Item struct {
	ID         string
	OwnerID    string
	Title      string
	ShortDesc  string
	LongDesc   string
	PriceCents int64
	Images     []string
	Sold       bool
	SoldTo     string
	SoldAt     *time.Time
	CreatedAt  time.Time
}

func NewItem(id, ownerID, title string, priceCents int64, shortDesc, longDesc string, images []string, createdAt time.Time) *Item {
	return &Item{
		ID:         id,
		OwnerID:    ownerID,
		Title:      title,
		ShortDesc:  shortDesc,
		LongDesc:   longDesc,
		PriceCents: priceCents,
		Images:     images,
		Sold:       false,
		CreatedAt:  createdAt,
	}
}

func (i *Item) MarkAsSold(buyerID string, at time.Time) {
	i.Sold = true
	i.SoldTo = buyerID
	soldAt := at
	i.SoldAt = &soldAt
}

func (i *Item) IsSold() bool {
	return i.Sold
}

func (i *Item) OwnedBy(userID string) bool {
	return i.OwnerID == userID
}

// ItemPatch is a partial update of an item's mutable fields. Nil fields are
// left untouched.
type ItemPatch struct {
	Title      *string
	PriceCents *int64
	ShortDesc  *string
	LongDesc   *string
}

func (p ItemPatch) Empty() bool {
	return p.Title == nil && p.PriceCents == nil && p.ShortDesc == nil && p.LongDesc == nil
}

func (p ItemPatch) ApplyTo(i *Item) {
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.PriceCents != nil {
		i.PriceCents = *p.PriceCents
	}
	if p.ShortDesc != nil {
		i.ShortDesc = *p.ShortDesc
	}
	if p.LongDesc != nil {
		i.LongDesc = *p.LongDesc
	}
}
