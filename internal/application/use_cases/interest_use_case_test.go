package use_cases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/openmarket/marketplace-service/internal/domain/errors"
)

func TestAddInterestIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, buyerID))
	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, buyerID))

	count, err := env.facade.NumberOfInterested(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOwnerCannotExpressInterest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	err := env.facade.AddInterestedUser(ctx, itemID, ownerID)
	require.ErrorIs(t, err, domainErrors.ErrOwnInterest)
	assert.Equal(t, domainErrors.KindPolicy, domainErrors.KindOf(err))
}

func TestInterestOnSoldItemFails(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	lateID := env.mustRegister(ctx, "latecomer")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	_, err := env.facade.Purchase(ctx, itemID, buyerID)
	require.NoError(t, err)

	err = env.facade.AddInterestedUser(ctx, itemID, lateID)
	require.ErrorIs(t, err, domainErrors.ErrInterestOnSold)
}

func TestRemoveInterestIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, buyerID))
	require.NoError(t, env.facade.RemoveInterestedUser(ctx, itemID, buyerID))
	require.NoError(t, env.facade.RemoveInterestedUser(ctx, itemID, buyerID))

	count, err := env.facade.NumberOfInterested(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIsInterested(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	interested, err := env.facade.IsInterested(ctx, itemID, buyerID)
	require.NoError(t, err)
	assert.False(t, interested)

	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, buyerID))

	interested, err = env.facade.IsInterested(ctx, itemID, buyerID)
	require.NoError(t, err)
	assert.True(t, interested)
}

func TestNumberOfInterestedUsesCachedCount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	otherID := env.mustRegister(ctx, "other")
	itemID := env.mustListItem(ctx, ownerID, "title test")

	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, buyerID))

	// First read populates the cache, the incremental update keeps it live.
	count, err := env.facade.NumberOfInterested(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, env.facade.AddInterestedUser(ctx, itemID, otherID))

	count, err = env.facade.NumberOfInterested(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUserNumberInterest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ownerID := env.mustRegister(ctx, "seller")
	buyerID := env.mustRegister(ctx, "buyer")
	first := env.mustListItem(ctx, ownerID, "first")
	second := env.mustListItem(ctx, ownerID, "second")

	require.NoError(t, env.facade.AddInterestedUser(ctx, first, buyerID))
	require.NoError(t, env.facade.AddInterestedUser(ctx, second, buyerID))

	count, err := env.facade.UserNumberInterest(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInterestOnUnknownItem(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	buyerID := env.mustRegister(ctx, "buyer")

	err := env.facade.AddInterestedUser(ctx, "itm_missing", buyerID)
	require.ErrorIs(t, err, domainErrors.ErrItemNotFound)
}
