package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/programthis/order-cart-service/internal/domains/orders/domain"
	"github.com/programthis/order-cart-service/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	stored := clone(order)
	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
		stored.CreatedAt = now
	} else if stored.ID > r.nextID {
		r.nextID = stored.ID
	}
	stored.UpdatedAt = now
	r.orders[stored.ID] = stored
	return clone(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(order), nil
}

func (r *Repository) FindByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, clone(order))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].OrderDate.After(list[j].OrderDate)
	})
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func clone(order *domain.Order) *domain.Order {
	o := *order
	o.Lines = append([]domain.Line(nil), order.Lines...)
	return &o
}
