package application

import (
	"context"
	"fmt"
	"time"

	cartports "github.com/programthis/order-cart-service/internal/domains/cart/ports"
	"github.com/programthis/order-cart-service/internal/domains/catalog"
	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
	"github.com/programthis/order-cart-service/internal/domains/orders/ports"
)

// Service orchestrates the orders bounded context use cases: converting a
// cart into an immutable order and driving the order's post-creation
// lifecycle.
type Service struct {
	repo    ports.Repository
	carts   cartports.Service
	catalog catalog.Gateway
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, carts cartports.Service, gateway catalog.Gateway) *Service {
	return &Service{repo: repo, carts: carts, catalog: gateway}
}

// PlaceFromCart validates every cart line against the catalog, freezes the
// cart into an order, and persists it. The originating cart is left intact;
// callers that want the full checkout use CreateFromCart or the durable
// checkout workflow, which clear the cart as a follow-up step.
//
// All catalog lookups happen before any write so a missing product aborts
// the whole operation with nothing persisted.
func (s *Service) PlaceFromCart(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (*domain.Order, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, mapError(domain.ErrEmptyOrder)
	}
	names := make(map[int64]string, len(cart.Lines))
	for _, line := range cart.Lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, mapError(fmt.Errorf("product %d: %w", line.ProductID, err))
		}
		names[line.ProductID] = product.Name
	}
	order, err := domain.NewFromCart(cart, names, shippingAddress, paymentMethod, time.Now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// CreateFromCart runs the full checkout inline: place the order, then clear
// the cart. The two steps are separate units of work; if clearing fails the
// order has already been committed and the error surfaces as fatal to the
// request rather than rolling anything back.
func (s *Service) CreateFromCart(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (*domain.Order, error) {
	order, err := s.PlaceFromCart(ctx, userID, shippingAddress, paymentMethod)
	if err != nil {
		return nil, err
	}
	if _, err := s.carts.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: order %d: %w", ErrCartClearFailed, order.ID, err)
	}
	return order, nil
}

// GetByID loads a single order aggregate.
func (s *Service) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListByUser returns the user's orders, most recent first. An empty slice is
// a normal result.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves an order along the status transition graph.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status domain.Status) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := order.TransitionTo(status, time.Now().UTC()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete hard-deletes an order and its lines. Deleting an absent id fails
// with ErrOrderNotFound so callers can distinguish it from a confirmed
// deletion.
func (s *Service) Delete(ctx context.Context, orderID int64) error {
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return mapError(err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
