package application

import (
	"errors"
	"fmt"

	"github.com/programthis/order-cart-service/internal/domains/cart/domain"
	"github.com/programthis/order-cart-service/internal/domains/cart/ports"
	"github.com/programthis/order-cart-service/internal/domains/catalog"
)

var (
	// ErrProductUnavailable signals the catalog lookup failed or returned
	// not-found while mutating a cart; the cart is left untouched.
	ErrProductUnavailable = errors.New("product unavailable")
	// ErrCartNotFound signals no cart exists for the user.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound signals the cart has no line for the product.
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid cart input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, catalog.ErrCatalogUnavailable):
		return fmt.Errorf("%w: %w", ErrProductUnavailable, err)
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrCartNotFound, err)
	case errors.Is(err, domain.ErrLineNotFound):
		return fmt.Errorf("%w: %w", ErrItemNotFound, err)
	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
