package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
)

func TestValidatePurchase(t *testing.T) {
	rules := NewPurchaseService()
	item := NewItem("itm_1", "usr_1", "thing", 100, "", "", nil, time.Now())

	require.NoError(t, rules.ValidatePurchase(item, "usr_2"))
	require.ErrorIs(t, rules.ValidatePurchase(nil, "usr_2"), domainErrors.ErrItemNotFound)
	require.ErrorIs(t, rules.ValidatePurchase(item, ""), domainErrors.ErrMissingUserID)
	require.ErrorIs(t, rules.ValidatePurchase(item, "usr_1"), domainErrors.ErrOwnPurchase)

	item.MarkAsSold("usr_2", time.Now())
	require.ErrorIs(t, rules.ValidatePurchase(item, "usr_3"), domainErrors.ErrItemAlreadySold)
}

func TestValidateInterest(t *testing.T) {
	rules := NewPurchaseService()
	item := NewItem("itm_1", "usr_1", "thing", 100, "", "", nil, time.Now())

	require.NoError(t, rules.ValidateInterest(item, "usr_2"))
	require.ErrorIs(t, rules.ValidateInterest(item, "usr_1"), domainErrors.ErrOwnInterest)

	item.MarkAsSold("usr_2", time.Now())
	require.ErrorIs(t, rules.ValidateInterest(item, "usr_3"), domainErrors.ErrInterestOnSold)
}

func TestValidateListing(t *testing.T) {
	rules := NewPurchaseService()

	require.NoError(t, rules.ValidateListing("usr_1", "thing", 100, nil))
	require.ErrorIs(t, rules.ValidateListing("", "thing", 100, nil), domainErrors.ErrMissingUserID)
	require.ErrorIs(t, rules.ValidateListing("usr_1", "", 100, nil), domainErrors.ErrMissingTitle)
	require.ErrorIs(t, rules.ValidateListing("usr_1", "thing", 0, nil), domainErrors.ErrInvalidPrice)
	require.ErrorIs(t, rules.ValidateListing("usr_1", "thing", -5, nil), domainErrors.ErrInvalidPrice)
	require.ErrorIs(t, rules.ValidateListing("usr_1", "thing", 100, []string{"a", "b", "c", "d"}), domainErrors.ErrTooManyImages)
}
