package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidUserID    = errors.New("user id must be greater than zero")
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrLineNotFound     = errors.New("cart has no line for product")
)

// Line is one product entry in a shopping cart. Its identity within the
// aggregate is the product id; a cart holds at most one line per product.
type Line struct {
	ProductID int64
	Quantity  int32
	// PriceAtAddition is the unit price captured when the product was first
	// added. Later catalog price changes never touch it.
	PriceAtAddition decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Cart models the per-user shopping cart aggregate. It exclusively owns its
// lines; there is at most one cart per user.
type Cart struct {
	ID        int64
	UserID    int64
	Lines     []Line
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart constructs an empty cart for a user.
func NewCart(userID int64) (*Cart, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return &Cart{UserID: userID}, nil
}

// Line returns the line for the given product, if present.
func (c *Cart) Line(productID int64) (*Line, bool) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i], true
		}
	}
	return nil, false
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// AddProduct merges quantity into an existing line or appends a new one.
// The price snapshot is only taken on first addition; topping up an existing
// line keeps the original PriceAtAddition.
func (c *Cart) AddProduct(productID int64, quantity int32, unitPrice decimal.Decimal, now time.Time) error {
	if productID <= 0 {
		return ErrInvalidProductID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if line, ok := c.Line(productID); ok {
		line.Quantity += quantity
		line.UpdatedAt = now
		c.UpdatedAt = now
		return nil
	}
	c.Lines = append(c.Lines, Line{
		ProductID:       productID,
		Quantity:        quantity,
		PriceAtAddition: unitPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	c.UpdatedAt = now
	return nil
}

// SetQuantity overwrites the quantity of an existing line. A quantity of zero
// or less removes the line entirely rather than failing.
func (c *Cart) SetQuantity(productID int64, quantity int32, now time.Time) error {
	line, ok := c.Line(productID)
	if !ok {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		return c.RemoveProduct(productID, now)
	}
	line.Quantity = quantity
	line.UpdatedAt = now
	c.UpdatedAt = now
	return nil
}

// RemoveProduct deletes the line for the given product.
func (c *Cart) RemoveProduct(productID int64, now time.Time) error {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.UpdatedAt = now
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear removes every line. Clearing an already-empty cart is a no-op apart
// from the timestamp bump.
func (c *Cart) Clear(now time.Time) {
	c.Lines = nil
	c.UpdatedAt = now
}
