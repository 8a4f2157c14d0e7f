package application

import (
	"context"
	"fmt"
	"time"

	"github.com/programthis/order-cart-service/internal/domains/cart/domain"
	"github.com/programthis/order-cart-service/internal/domains/cart/ports"
	"github.com/programthis/order-cart-service/internal/domains/catalog"
)

// Service orchestrates the cart bounded context use cases. Every mutation
// re-reads and re-writes the full aggregate; the catalog is consulted before
// any storage work so a failed lookup never leaves a partial write behind.
type Service struct {
	repo    ports.Repository
	catalog catalog.Gateway
}

// NewService wires the cart service with its dependencies.
func NewService(repo ports.Repository, gateway catalog.Gateway) *Service {
	return &Service{repo: repo, catalog: gateway}
}

// GetOrCreate returns the user's cart, lazily creating an empty one on first
// access. The store's unique index on user_id arbitrates concurrent first
// accesses.
func (s *Service) GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return cart, nil
}

// AddItem resolves the product against the catalog, then merges the quantity
// into the user's cart. Topping up an existing line keeps the price captured
// at first addition.
func (s *Service) AddItem(ctx context.Context, userID, productID int64, quantity int32) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, mapError(fmt.Errorf("product %d: %w", productID, err))
	}
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := cart.AddProduct(productID, quantity, product.Price, time.Now().UTC()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, cart)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line instead of failing.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int32) (*domain.Cart, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := cart.SetQuantity(productID, quantity, time.Now().UTC()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, cart)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// RemoveItem deletes the line for the product from the user's cart.
func (s *Service) RemoveItem(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := cart.RemoveProduct(productID, time.Now().UTC()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, cart)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Clear removes every line from the user's cart. Clearing an already-empty
// cart succeeds and only bumps the cart's updated_at.
func (s *Service) Clear(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	cart.Clear(time.Now().UTC())
	saved, err := s.repo.Save(ctx, cart)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
