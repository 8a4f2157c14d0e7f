package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/programthis/order-cart-service/internal/domains/cart/domain"
)

func buildCart(t *testing.T) *cartdomain.Cart {
	t.Helper()
	cart, err := cartdomain.NewCart(7)
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, cart.AddProduct(101, 2, decimal.RequireFromString("10.00"), now))
	require.NoError(t, cart.AddProduct(102, 1, decimal.RequireFromString("25.50"), now))
	return cart
}

func TestNewFromCart_ComputesTotals(t *testing.T) {
	cart := buildCart(t)
	now := time.Now().UTC()

	order, err := NewFromCart(cart, map[int64]string{101: "Laptop", 102: "Mouse"}, "10 Main St", "CARD", now)
	require.NoError(t, err)
	require.Equal(t, int64(7), order.UserID)
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, now, order.OrderDate)
	require.Len(t, order.Lines, 2)

	require.Equal(t, "Laptop", order.Lines[0].ProductName)
	require.True(t, order.Lines[0].Subtotal.Equal(decimal.RequireFromString("20.00")))
	require.True(t, order.Lines[1].Subtotal.Equal(decimal.RequireFromString("25.50")))
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("45.50")))
}

func TestNewFromCart_RejectsEmptyCart(t *testing.T) {
	cart, err := cartdomain.NewCart(7)
	require.NoError(t, err)

	_, err = NewFromCart(cart, nil, "10 Main St", "CARD", time.Now().UTC())
	require.ErrorIs(t, err, ErrEmptyOrder)

	_, err = NewFromCart(nil, nil, "10 Main St", "CARD", time.Now().UTC())
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestNewFromCart_RequiresEveryProductName(t *testing.T) {
	cart := buildCart(t)

	_, err := NewFromCart(cart, map[int64]string{101: "Laptop"}, "10 Main St", "CARD", time.Now().UTC())
	require.ErrorIs(t, err, ErrMissingName)
}

func TestTransitionTo_AllowedPaths(t *testing.T) {
	now := time.Now().UTC()
	order := &Order{Status: StatusPending}

	require.NoError(t, order.TransitionTo(StatusPaid, now))
	require.NoError(t, order.TransitionTo(StatusShipped, now))
	require.NoError(t, order.TransitionTo(StatusDelivered, now))
}

func TestTransitionTo_CancellationWindow(t *testing.T) {
	now := time.Now().UTC()

	order := &Order{Status: StatusPending}
	require.NoError(t, order.TransitionTo(StatusCancelled, now))

	order = &Order{Status: StatusPaid}
	require.NoError(t, order.TransitionTo(StatusCancelled, now))

	order = &Order{Status: StatusShipped}
	require.ErrorIs(t, order.TransitionTo(StatusCancelled, now), ErrInvalidTransition)
}

func TestTransitionTo_RejectsIllegalMoves(t *testing.T) {
	now := time.Now().UTC()

	order := &Order{Status: StatusPending}
	require.ErrorIs(t, order.TransitionTo(StatusDelivered, now), ErrInvalidTransition)

	order = &Order{Status: StatusDelivered}
	require.ErrorIs(t, order.TransitionTo(StatusPaid, now), ErrInvalidTransition)

	order = &Order{Status: StatusCancelled}
	require.ErrorIs(t, order.TransitionTo(StatusPending, now), ErrInvalidTransition)
}

func TestTransitionTo_RejectsUnknownStatus(t *testing.T) {
	order := &Order{Status: StatusPending}
	require.ErrorIs(t, order.TransitionTo(Status("REFUNDED"), time.Now().UTC()), ErrInvalidStatus)
}
