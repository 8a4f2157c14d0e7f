package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/programthis/order-cart-service/internal/domains/cart/domain"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrEmptyOrder        = errors.New("order must contain at least one line")
	ErrMissingName       = errors.New("order line requires a product name")
)

// transitions is the allowed status graph. Terminal states have no exits.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

// Line is one immutable, priced entry in a finalized order. It is copied from
// a cart line at creation time and never referenced back.
type Line struct {
	ProductID   int64
	ProductName string
	Quantity    int32
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Order is the immutable-after-creation record of a converted cart. Only
// Status and UpdatedAt change once the order exists.
type Order struct {
	ID              int64
	UserID          int64
	OrderDate       time.Time
	TotalAmount     decimal.Decimal
	Status          Status
	ShippingAddress string
	PaymentMethod   string
	Lines           []Line
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewFromCart freezes a non-empty cart into a pending order. Unit prices come
// from the cart's price snapshots; product names come from the catalog at
// order time via the names map. Line order follows the cart's line order.
func NewFromCart(cart *cartdomain.Cart, productNames map[int64]string, shippingAddress, paymentMethod string, now time.Time) (*Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyOrder
	}
	order := &Order{
		UserID:          cart.UserID,
		OrderDate:       now,
		Status:          StatusPending,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		TotalAmount:     decimal.Zero,
		Lines:           make([]Line, 0, len(cart.Lines)),
	}
	for _, cl := range cart.Lines {
		name, ok := productNames[cl.ProductID]
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: product %d", ErrMissingName, cl.ProductID)
		}
		subtotal := cl.PriceAtAddition.Mul(decimal.NewFromInt32(cl.Quantity))
		order.Lines = append(order.Lines, Line{
			ProductID:   cl.ProductID,
			ProductName: name,
			Quantity:    cl.Quantity,
			UnitPrice:   cl.PriceAtAddition,
			Subtotal:    subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)
	}
	return order, nil
}

// TransitionTo moves the order to a new status, enforcing the transition
// graph. Unknown statuses and illegal moves are rejected.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if !isValidStatus(next) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	for _, allowed := range transitions[o.Status] {
		if next == allowed {
			o.Status = next
			o.UpdatedAt = now
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
