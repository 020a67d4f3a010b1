package use_cases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
	"github.com/openmarket/marketplace-service/internal/domain/market"
)

func TestAddItemRoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")

	itemID, err := env.facade.AddItem(ctx, ownerID, "title test", 100, "short desc", "a bigger desc", []string{"items/1_big.png"})
	require.NoError(t, err)

	item, err := env.facade.GetItemDetails(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, "title test", item.Title)
	assert.Equal(t, ownerID, item.OwnerID)
	assert.Equal(t, int64(100), item.PriceCents)
	assert.False(t, item.Sold)
	assert.Equal(t, []string{"items/1_big.png"}, item.Images)
}

func TestAddItemValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")

	_, err := env.facade.AddItem(ctx, ownerID, "", 100, "", "", nil)
	require.ErrorIs(t, err, domainErrors.ErrMissingTitle)

	_, err = env.facade.AddItem(ctx, ownerID, "thing", 0, "", "", nil)
	require.ErrorIs(t, err, domainErrors.ErrInvalidPrice)

	_, err = env.facade.AddItem(ctx, "", "thing", 100, "", "", nil)
	require.ErrorIs(t, err, domainErrors.ErrMissingUserID)

	_, err = env.facade.AddItem(ctx, ownerID, "thing", 100, "", "", []string{"a", "b", "c", "d"})
	require.ErrorIs(t, err, domainErrors.ErrTooManyImages)
}

func TestSearchMatchesLongDescription(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	wanted := env.mustListItem(ctx, ownerID, "title test")
	_, err := env.facade.AddItem(ctx, ownerID, "unrelated", 200, "nothing", "something else", nil)
	require.NoError(t, err)

	results, err := env.facade.Search(ctx, "a bigger desc")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, wanted, results[0].ID)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	itemID := env.mustListItem(ctx, ownerID, "Vintage Lamp")

	results, err := env.facade.Search(ctx, "vintage lamp")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, itemID, results[0].ID)
}

func TestSearchEmptyTermMatchesNothing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	env.mustListItem(ctx, ownerID, "title test")

	results, err := env.facade.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGalleryDistinguishesEmptyCatalog(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	gallery, err := env.facade.AllItemsWithInterest(ctx)
	require.NoError(t, err)
	assert.True(t, gallery.NoListings)
	assert.Empty(t, gallery.Items)

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	itemID := env.mustListItem(ctx, ownerID, "title test")
	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, buyerID))

	gallery, err = env.facade.AllItemsWithInterest(ctx)
	require.NoError(t, err)
	assert.False(t, gallery.NoListings)
	require.Len(t, gallery.Items, 1)
	assert.Equal(t, itemID, gallery.Items[0].Item.ID)
	assert.Equal(t, 1, gallery.Items[0].InterestCount)
}

func TestSearchWithInterest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	itemID := env.mustListItem(ctx, ownerID, "title test")
	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, buyerID))

	gallery, err := env.facade.SearchWithInterest(ctx, "title test")
	require.NoError(t, err)
	assert.False(t, gallery.NoListings)
	require.Len(t, gallery.Items, 1)
	assert.Equal(t, 1, gallery.Items[0].InterestCount)

	gallery, err = env.facade.SearchWithInterest(ctx, "no such thing")
	require.NoError(t, err)
	assert.False(t, gallery.NoListings)
	assert.Empty(t, gallery.Items)
}

func TestUpdateItem(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	otherID := env.mustRegister(ctx, "other")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	newTitle := "edited title"
	patch := market.ItemPatch{Title: &newTitle}

	err := env.facade.UpdateItem(ctx, otherID, itemID, patch)
	require.ErrorIs(t, err, domainErrors.ErrNotOwner)

	require.NoError(t, env.facade.UpdateItem(ctx, ownerID, itemID, patch))

	item, err := env.facade.GetItemDetails(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, "edited title", item.Title)
	// Untouched fields survive a partial patch.
	assert.Equal(t, "short desc", item.ShortDesc)
	assert.Equal(t, int64(100), item.PriceCents)
}

func TestUpdateSoldItemFails(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	_, err := env.facade.Purchase(ctx, itemID, buyerID)
	require.NoError(t, err)

	newTitle := "edited title"
	err = env.facade.UpdateItem(ctx, ownerID, itemID, market.ItemPatch{Title: &newTitle})
	require.ErrorIs(t, err, domainErrors.ErrSoldItemImmutable)
	assert.Equal(t, domainErrors.KindConflict, domainErrors.KindOf(err))
}

func TestDeleteItemOnlyWhenSold(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	err := env.facade.DeleteItem(ctx, ownerID, itemID)
	require.ErrorIs(t, err, domainErrors.ErrDeleteUnsold)
	assert.Equal(t, domainErrors.KindPolicy, domainErrors.KindOf(err))

	_, err = env.facade.Purchase(ctx, itemID, buyerID)
	require.NoError(t, err)

	err = env.facade.DeleteItem(ctx, buyerID, itemID)
	require.ErrorIs(t, err, domainErrors.ErrNotOwner)

	require.NoError(t, env.facade.DeleteItem(ctx, ownerID, itemID))

	_, err = env.facade.GetItemDetails(ctx, itemID)
	require.ErrorIs(t, err, domainErrors.ErrItemNotFound)
}

func TestDeleteItemDropsInterestRecords(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, buyerID))

	count, err := env.facade.UserNumberInterest(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = env.facade.Purchase(ctx, itemID, buyerID)
	require.NoError(t, err)
	require.NoError(t, env.facade.DeleteItem(ctx, ownerID, itemID))

	count, err = env.facade.UserNumberInterest(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestItemsByOwnerAndOwnerOf(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	otherID := env.mustRegister(ctx, "other")
	first := env.mustListItem(ctx, ownerID, "first")
	second := env.mustListItem(ctx, ownerID, "second")
	env.mustListItem(ctx, otherID, "not mine")

	items, err := env.facade.ItemsByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0].ID)
	assert.Equal(t, second, items[1].ID)

	owner, err := env.facade.OwnerOf(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, ownerID, owner)
}

func TestGetImages(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	itemID, err := env.facade.AddItem(ctx, ownerID, "pictured", 100, "", "", []string{"items/a.png", "items/b.png"})
	require.NoError(t, err)

	item, err := env.facade.GetItemDetails(ctx, itemID)
	require.NoError(t, err)

	images, err := env.facade.GetImages(ctx, []*market.Item{item})
	require.NoError(t, err)
	assert.Equal(t, []string{"items/a.png", "items/b.png"}, images[itemID])
}
