package ports

import (
	"context"
	"errors"

	"github.com/programthis/order-cart-service/internal/domains/cart/domain"
)

var ErrNotFound = errors.New("cart not found")

// Repository persists cart aggregates. Save writes the whole aggregate —
// cart row plus lines — as one unit so concurrent mutations are arbitrated
// by the store's transaction isolation.
type Repository interface {
	FindByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error)
}
