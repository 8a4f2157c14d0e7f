// Package server wires the HTTP transport for the cart and order APIs.
package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/programthis/order-cart-service/internal/shared/errors"
)

// ApiHandleFunctions groups the API handler sets mounted on the router.
type ApiHandleFunctions struct {
	CartAPI  CartAPI
	OrderAPI OrderAPI
}

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a gin engine with all API routes registered.
func NewRouter(handlers ApiHandleFunctions) *gin.Engine {
	router := gin.Default()
	for _, route := range getRoutes(handlers) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

func getRoutes(handlers ApiHandleFunctions) []Route {
	return []Route{
		{http.MethodGet, "/api/carts/:userId", handlers.CartAPI.GetOrCreateCart},
		{http.MethodPost, "/api/carts/:userId/items", handlers.CartAPI.AddProductToCart},
		{http.MethodPut, "/api/carts/:userId/items/:productId", handlers.CartAPI.UpdateProductQuantity},
		{http.MethodDelete, "/api/carts/:userId/items/:productId", handlers.CartAPI.RemoveProductFromCart},
		{http.MethodDelete, "/api/carts/:userId/clear", handlers.CartAPI.ClearCart},

		{http.MethodPost, "/api/users/:userId/orders", handlers.OrderAPI.CreateOrderFromCart},
		{http.MethodGet, "/api/users/:userId/orders", handlers.OrderAPI.GetOrdersByUserId},
		{http.MethodGet, "/api/orders/:orderId", handlers.OrderAPI.GetOrderById},
		{http.MethodPut, "/api/orders/:orderId/status", handlers.OrderAPI.UpdateOrderStatus},
		{http.MethodDelete, "/api/orders/:orderId", handlers.OrderAPI.DeleteOrder},
	}
}

func defaultHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}
