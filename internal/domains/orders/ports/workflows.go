package ports

import (
	"context"

	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
)

// CheckoutInput carries the payload needed to convert a user's cart into an
// order. IdempotencyKey, when set, deduplicates repeated checkout attempts.
type CheckoutInput struct {
	UserID          int64
	ShippingAddress string
	PaymentMethod   string
	IdempotencyKey  string
}

// CheckoutOrchestrator runs the cart-to-order conversion, either inline or as
// a durable workflow that retries the post-commit cart clearing.
type CheckoutOrchestrator interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error)
}
