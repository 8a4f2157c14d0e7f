package mapper

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/programthis/order-cart-service/internal/domains/orders/domain"
)

// Link is a hypermedia reference on a transport payload.
type Link struct {
	Href string `json:"href"`
}

// OrderLine is the transport-layer shape of an order line.
type OrderLine struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order is the transport-layer shape of the order aggregate.
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	OrderDate       time.Time       `json:"orderDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Items           []OrderLine     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Links           map[string]Link `json:"_links,omitempty"`
}

// OrderCreationRequest is the checkout request body.
type OrderCreationRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
	IdempotencyKey  string `json:"idempotencyKey"`
}

// StatusUpdateRequest carries a status transition.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// FromDomain converts a domain order to the transport representation,
// attaching self and user-orders links.
func FromDomain(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return Order{
		ID:              order.ID,
		UserID:          order.UserID,
		OrderDate:       order.OrderDate,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Links: map[string]Link{
			"self":        {Href: fmt.Sprintf("/api/orders/%d", order.ID)},
			"user-orders": {Href: fmt.Sprintf("/api/users/%d/orders", order.UserID)},
		},
	}
}

// FromDomainList converts a list of orders.
func FromDomainList(orders []*ordersdomain.Order) []Order {
	list := make([]Order, 0, len(orders))
	for _, order := range orders {
		list = append(list, FromDomain(order))
	}
	return list
}
