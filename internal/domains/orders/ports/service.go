package ports

import (
	"context"

	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
)

// Service exposes the order use cases to adapters.
//
// CreateFromCart runs the full checkout: validate, persist, then clear the
// originating cart. PlaceFromCart stops after the persist step so a durable
// workflow can run the cart-clearing as a separately retried activity.
type Service interface {
	CreateFromCart(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (*domain.Order, error)
	PlaceFromCart(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (*domain.Order, error)
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.Status) (*domain.Order, error)
	Delete(ctx context.Context, orderID int64) error
}
