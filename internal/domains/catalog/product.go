// Package catalog defines the contract the cart and orders contexts use to
// resolve product metadata from the external product catalog service.
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductNotFound signals the catalog does not know the product id.
	ErrProductNotFound = errors.New("product not found in catalog")
	// ErrCatalogUnavailable signals the catalog could not be reached or
	// answered with a server-side failure.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
)

// Product is the catalog's authoritative view of a product.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// Gateway is the synchronous lookup port into the product catalog.
type Gateway interface {
	GetProduct(ctx context.Context, productID int64) (Product, error)
}
