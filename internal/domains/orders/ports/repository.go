package ports

import (
	"context"
	"errors"

	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists order aggregates. Save writes the order row and its
// lines as one transaction; cascade deletion of lines is explicit in the
// adapter rather than delegated to framework lifecycle hooks.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// FindByUser returns the user's orders ordered by order date, most
	// recent first.
	FindByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
