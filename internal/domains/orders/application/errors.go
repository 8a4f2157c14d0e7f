package application

import (
	"errors"
	"fmt"

	"github.com/programthis/order-cart-service/internal/domains/catalog"
	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
	"github.com/programthis/order-cart-service/internal/domains/orders/ports"
)

var (
	// ErrEmptyCart signals the user's cart has no lines to convert.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrProductNotInCatalog signals a cart line's product could not be
	// resolved while building the order; nothing is persisted.
	ErrProductNotInCatalog = errors.New("cart product not in catalog")
	// ErrOrderNotFound signals no order exists for the id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus signals an unknown status value or an illegal
	// transition.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrCartClearFailed signals the order was committed but the
	// originating cart could not be cleared afterwards.
	ErrCartClearFailed = errors.New("order committed but cart clear failed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return fmt.Errorf("%w: %w", ErrEmptyCart, err)
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, catalog.ErrCatalogUnavailable):
		return fmt.Errorf("%w: %w", ErrProductNotInCatalog, err)
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", ErrInvalidStatus, err)
	}
	return err
}
