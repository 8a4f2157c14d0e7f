package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderhttpmapper "github.com/programthis/order-cart-service/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/programthis/order-cart-service/internal/domains/orders/domain"
	ordersports "github.com/programthis/order-cart-service/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders bounded context service and
// the checkout orchestrator.
type OrderAPI struct {
	service  ordersports.Service
	checkout ordersports.CheckoutOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, checkout ordersports.CheckoutOrchestrator) OrderAPI {
	return OrderAPI{service: service, checkout: checkout}
}

// Post /api/users/:userId/orders
// Create an order from the user's cart
func (api *OrderAPI) CreateOrderFromCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload orderhttpmapper.OrderCreationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.IdempotencyKey == "" {
		payload.IdempotencyKey = uuid.NewString()
	}
	input := ordersports.CheckoutInput{
		UserID:          userID,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   payload.PaymentMethod,
		IdempotencyKey:  payload.IdempotencyKey,
	}
	order, err := api.createOrder(c, input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomain(order))
}

func (api *OrderAPI) createOrder(c *gin.Context, input ordersports.CheckoutInput) (*ordersdomain.Order, error) {
	if api.checkout != nil {
		return api.checkout.Checkout(c.Request.Context(), input)
	}
	return api.service.CreateFromCart(c.Request.Context(), input.UserID, input.ShippingAddress, input.PaymentMethod)
}

// Get /api/orders/:orderId
// Find an order by its ID
func (api *OrderAPI) GetOrderById(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomain(order))
}

// Get /api/users/:userId/orders
// List the user's orders, most recent first
func (api *OrderAPI) GetOrdersByUserId(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	orders, err := api.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainList(orders))
}

// Put /api/orders/:orderId/status
// Move an order along the status transition graph
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload orderhttpmapper.StatusUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), orderID, ordersdomain.Status(payload.Status))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomain(order))
}

// Delete /api/orders/:orderId
// Hard-delete an order and its lines
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), orderID); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
