package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/programthis/order-cart-service/internal/durable/temporal/activities/orders"
	ordersdomain "github.com/programthis/order-cart-service/internal/domains/orders/domain"
	ordersports "github.com/programthis/order-cart-service/internal/domains/orders/ports"
)

// RunOrderCheckoutSequence executes the ordered activities that convert a
// cart into an order. The order placement runs once — catalog and storage
// failures abort the checkout without internal retries — while the
// post-commit cart clearing is retried until it sticks, closing the window
// where an order exists but its cart still holds lines.
func RunOrderCheckoutSequence(ctx workflow.Context, input ordersports.CheckoutInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order checkout sequence started", "userId", input.UserID)

	placeCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})
	var order ordersdomain.Order
	if err := workflow.ExecuteActivity(placeCtx, orderactivities.PlaceOrderActivityName, input).Get(placeCtx, &order); err != nil {
		logger.Error("order checkout sequence failed to place order", "userId", input.UserID, "error", err)
		return nil, err
	}

	clearCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	})
	if err := workflow.ExecuteActivity(clearCtx, orderactivities.ClearCartActivityName, input.UserID).Get(clearCtx, nil); err != nil {
		logger.Error("order checkout sequence failed to clear cart after commit",
			"userId", input.UserID, "orderId", order.ID, "error", err)
		return nil, err
	}

	logger.Info("order checkout sequence completed", "userId", input.UserID, "orderId", order.ID)
	return &order, nil
}
