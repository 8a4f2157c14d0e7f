package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/programthis/order-cart-service/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/programthis/order-cart-service/internal/domains/cart/ports"
)

// CartAPI wires HTTP transport with the cart bounded context service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

type addItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int32 `json:"quantity" binding:"required"`
}

type quantityUpdateRequest struct {
	Quantity *int32 `json:"quantity" binding:"required"`
}

// Get /api/carts/:userId
// Get or lazily create the user's shopping cart
func (api *CartAPI) GetOrCreateCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	cart, err := api.service.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondCartServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomain(cart))
}

// Post /api/carts/:userId/items
// Add a product to the cart
func (api *CartAPI) AddProductToCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload addItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	cart, err := api.service.AddItem(c.Request.Context(), userID, payload.ProductID, payload.Quantity)
	if err != nil {
		respondCartServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomain(cart))
}

// Put /api/carts/:userId/items/:productId
// Update a product's quantity; zero or less removes the line
func (api *CartAPI) UpdateProductQuantity(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload quantityUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	cart, err := api.service.UpdateQuantity(c.Request.Context(), userID, productID, *payload.Quantity)
	if err != nil {
		respondCartServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomain(cart))
}

// Delete /api/carts/:userId/items/:productId
// Remove a product from the cart
func (api *CartAPI) RemoveProductFromCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	cart, err := api.service.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		respondCartServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomain(cart))
}

// Delete /api/carts/:userId/clear
// Remove every item from the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	cart, err := api.service.Clear(c.Request.Context(), userID)
	if err != nil {
		respondCartServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomain(cart))
}
