package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	cartapp "github.com/programthis/order-cart-service/internal/domains/cart/application"
	cartports "github.com/programthis/order-cart-service/internal/domains/cart/ports"
	ordersdomain "github.com/programthis/order-cart-service/internal/domains/orders/domain"
	ordersports "github.com/programthis/order-cart-service/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName validates the cart and persists the order.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// ClearCartActivityName empties the originating cart after the order
	// commit; it is retried independently of the order write.
	ClearCartActivityName = "orders.activities.ClearCart"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	orders ordersports.Service
	carts  cartports.Service
}

// NewActivities wires the order and cart services into the Temporal
// activities bundle.
func NewActivities(orders ordersports.Service, carts cartports.Service) *Activities {
	return &Activities{orders: orders, carts: carts}
}

// PlaceOrder freezes the user's cart into a persisted order without clearing
// the cart. The clearing runs as its own activity so it can be retried after
// the order has committed.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.CheckoutInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orders == nil {
		logger.Error("place order activity not initialized", "userId", input.UserID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID)
	order, err := a.orders.PlaceFromCart(ctx, input.UserID, input.ShippingAddress, input.PaymentMethod)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "total", order.TotalAmount.String())
	return order, nil
}

// ClearCart empties the user's cart. A missing cart means there is nothing
// left to clear, which is treated as success.
func (a *Activities) ClearCart(ctx context.Context, userID int64) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.carts == nil {
		logger.Error("clear cart activity not initialized", "userId", userID)
		return errors.New("clear cart activity not initialized")
	}
	logger.Info("ClearCart activity started", "userId", userID)
	if _, err := a.carts.Clear(ctx, userID); err != nil {
		if errors.Is(err, cartapp.ErrCartNotFound) {
			logger.Info("ClearCart found no cart; nothing to do", "userId", userID)
			return nil
		}
		logger.Error("ClearCart activity failed", "userId", userID, "error", err)
		return err
	}
	logger.Info("ClearCart activity completed", "userId", userID)
	return nil
}
