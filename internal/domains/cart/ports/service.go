package ports

import (
	"context"

	"github.com/programthis/order-cart-service/internal/domains/cart/domain"
)

// Service exposes the cart use cases to adapters and to the orders context.
type Service interface {
	GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID int64, quantity int32) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity int32) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID int64) (*domain.Cart, error)
	Clear(ctx context.Context, userID int64) (*domain.Cart, error)
}
