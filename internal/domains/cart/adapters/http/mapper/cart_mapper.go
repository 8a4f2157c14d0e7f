package mapper

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/programthis/order-cart-service/internal/domains/cart/domain"
)

// Link is a hypermedia reference on a transport payload.
type Link struct {
	Href string `json:"href"`
}

// CartLine is the transport-layer shape of a cart line. Money fields are
// serialized as decimal strings.
type CartLine struct {
	ProductID       int64           `json:"productId"`
	Quantity        int32           `json:"quantity"`
	PriceAtAddition decimal.Decimal `json:"priceAtAddition"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Cart is the transport-layer shape of the cart aggregate.
type Cart struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Items     []CartLine      `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Links     map[string]Link `json:"_links,omitempty"`
}

// FromDomain converts a domain cart to the transport representation,
// attaching self, add-item, and clear-cart links.
func FromDomain(cart *cartdomain.Cart) Cart {
	if cart == nil {
		return Cart{}
	}
	items := make([]CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, CartLine{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtAddition: line.PriceAtAddition,
			CreatedAt:       line.CreatedAt,
			UpdatedAt:       line.UpdatedAt,
		})
	}
	return Cart{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     items,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
		Links: map[string]Link{
			"self":       {Href: fmt.Sprintf("/api/carts/%d", cart.UserID)},
			"add-item":   {Href: fmt.Sprintf("/api/carts/%d/items", cart.UserID)},
			"clear-cart": {Href: fmt.Sprintf("/api/carts/%d/clear", cart.UserID)},
		},
	}
}
