package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/programthis/order-cart-service/internal/domains/cart/domain"
	"github.com/programthis/order-cart-service/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory cart persistence adapter. One cart per user is
// enforced by keying on user id, mirroring the unique index the Postgres
// adapter relies on.
type Repository struct {
	mu     sync.RWMutex
	carts  map[int64]*domain.Cart
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{carts: map[int64]*domain.Cart{}}
}

func (r *Repository) FindByUser(_ context.Context, userID int64) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[userID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(cart), nil
}

func (r *Repository) GetOrCreate(_ context.Context, userID int64) (*domain.Cart, error) {
	cart, err := domain.NewCart(userID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.carts[userID]; ok {
		return clone(existing), nil
	}
	now := time.Now().UTC()
	r.nextID++
	cart.ID = r.nextID
	cart.CreatedAt = now
	cart.UpdatedAt = now
	r.carts[userID] = clone(cart)
	return cart, nil
}

func (r *Repository) Save(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	stored := clone(cart)
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
	} else if stored.ID > r.nextID {
		r.nextID = stored.ID
	}
	r.carts[stored.UserID] = stored
	return clone(stored), nil
}

func clone(cart *domain.Cart) *domain.Cart {
	c := *cart
	c.Lines = append([]domain.Line(nil), cart.Lines...)
	return &c
}
