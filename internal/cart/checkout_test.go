package cart

import (
	"context"
	"testing"

	"github.com/ThabangMark/Brew-Bean/internal/checkout"
	"github.com/ThabangMark/Brew-Bean/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() domain.CustomerInfo {
	return domain.CustomerInfo{
		FirstName:     "Thabo",
		LastName:      "Mokoena",
		Email:         "thabo@example.com",
		Phone:         "555-0134",
		OrderType:     domain.OrderTypePickup,
		PaymentMethod: domain.PaymentMethodCash,
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	store := New(newSpyStorage())

	order, err := store.Checkout(validCustomer())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
}

func TestCheckout_MissingAddressForDelivery(t *testing.T) {
	ctx := context.Background()
	store := New(newSpyStorage())
	_, err := store.AddOrIncrement(ctx, latte())
	require.NoError(t, err)

	customer := validCustomer()
	customer.OrderType = domain.OrderTypeDelivery

	order, err := store.Checkout(customer)
	require.Error(t, err)
	var vErr *checkout.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "address", vErr.Field)
	assert.Nil(t, order)
	assert.Len(t, store.Items(), 1)
}

func TestCheckout_BuildsSnapshotWithoutClearing(t *testing.T) {
	ctx := context.Background()
	store := New(newSpyStorage())
	_, err := store.AddOrIncrement(ctx, latte())
	require.NoError(t, err)
	_, err = store.AddOrIncrement(ctx, latte())
	require.NoError(t, err)

	order, err := store.Checkout(validCustomer())
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 9.00, order.Totals.Subtotal)

	// The live cart is untouched until the order completes.
	assert.Len(t, store.Items(), 1)
}

func TestCheckout_SnapshotIsDecoupledFromLiveCart(t *testing.T) {
	ctx := context.Background()
	store := New(newSpyStorage())
	_, err := store.AddOrIncrement(ctx, latte())
	require.NoError(t, err)

	order, err := store.Checkout(validCustomer())
	require.NoError(t, err)

	_, err = store.AddOrIncrement(ctx, muffin())
	require.NoError(t, err)

	assert.Len(t, order.Items, 1)
	assert.Len(t, store.Items(), 2)
}

func TestCheckout_DeliveryTotalsIncludeFee(t *testing.T) {
	ctx := context.Background()
	store := New(newSpyStorage())
	_, err := store.AddOrIncrement(ctx, latte())
	require.NoError(t, err)

	customer := validCustomer()
	customer.OrderType = domain.OrderTypeDelivery
	customer.Address = "12 Roastery Lane"
	customer.City = "Beanville"
	customer.ZipCode = "90210"

	order, err := store.Checkout(customer)
	require.NoError(t, err)
	assert.Equal(t, 3.99, order.Totals.DeliveryFee)
}

func TestCompleteOrder_ClearsCart(t *testing.T) {
	ctx := context.Background()
	spy := newSpyStorage()
	store := New(spy)
	_, err := store.AddOrIncrement(ctx, latte())
	require.NoError(t, err)

	order, err := store.Checkout(validCustomer())
	require.NoError(t, err)

	require.NoError(t, store.CompleteOrder(ctx, order))
	assert.Empty(t, store.Items())
	assert.Equal(t, 1, spy.deletes)
}

func TestCompleteOrder_RejectedAfterClear(t *testing.T) {
	ctx := context.Background()
	store := New(newSpyStorage())
	_, err := store.AddOrIncrement(ctx, latte())
	require.NoError(t, err)

	order, err := store.Checkout(validCustomer())
	require.NoError(t, err)

	// The customer clears the cart while submission is in flight; a new
	// item added afterwards must survive the late completion attempt.
	require.True(t, store.Clear(ctx))
	_, err = store.AddOrIncrement(ctx, muffin())
	require.NoError(t, err)

	err = store.CompleteOrder(ctx, order)
	assert.ErrorIs(t, err, ErrCheckoutSuperseded)
	assert.Len(t, store.Items(), 1)
}

func TestCompleteOrder_AllowedAfterOtherMutations(t *testing.T) {
	ctx := context.Background()
	store := New(newSpyStorage())
	_, err := store.AddOrIncrement(ctx, latte())
	require.NoError(t, err)

	order, err := store.Checkout(validCustomer())
	require.NoError(t, err)

	// Adds and removals do not supersede a pending order.
	_, err = store.AddOrIncrement(ctx, muffin())
	require.NoError(t, err)

	require.NoError(t, store.CompleteOrder(ctx, order))
	assert.Empty(t, store.Items())
}
