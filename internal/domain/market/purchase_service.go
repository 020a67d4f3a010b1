package market

import (
	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
)

// PurchaseService holds the eligibility rules checked before a purchase is
// committed. The persistence layer re-checks the sold flag at commit time;
// these checks only reject attempts that can never succeed.
type PurchaseService struct{}

func NewPurchaseService() *PurchaseService {
	return &PurchaseService{}
}

func (s *PurchaseService) ValidatePurchase(item *Item, buyerID string) error {
	if item == nil {
		return domainErrors.ErrItemNotFound
	}
	if buyerID == "" {
		return domainErrors.ErrMissingUserID
	}
	if item.OwnedBy(buyerID) {
		return domainErrors.ErrOwnPurchase
	}
	if item.IsSold() {
		return domainErrors.ErrItemAlreadySold
	}
	return nil
}

func (s *PurchaseService) ValidateInterest(item *Item, userID string) error {
	if item == nil {
		return domainErrors.ErrItemNotFound
	}
	if userID == "" {
		return domainErrors.ErrMissingUserID
	}
	if item.OwnedBy(userID) {
		return domainErrors.ErrOwnInterest
	}
	if item.IsSold() {
		return domainErrors.ErrInterestOnSold
	}
	return nil
}

func (s *PurchaseService) ValidateListing(ownerID, title string, priceCents int64, images []string) error {
	if ownerID == "" {
		return domainErrors.ErrMissingUserID
	}
	if title == "" {
		return domainErrors.ErrMissingTitle
	}
	if priceCents <= 0 {
		return domainErrors.ErrInvalidPrice
	}
	if len(images) > MaxImagesPerItem {
		return domainErrors.ErrTooManyImages
	}
	return nil
}
