package checkout

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/programthis/order-cart-service/internal/domains/orders/domain"
	ordersports "github.com/programthis/order-cart-service/internal/domains/orders/ports"
	"github.com/programthis/order-cart-service/internal/durable/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "orders.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "ORDER_CHECKOUT"
)

// CheckoutWorkflowInput captures the payload required to convert a cart.
type CheckoutWorkflowInput struct {
	Command ordersports.CheckoutInput
	TraceID string
}

// CheckoutWorkflow orchestrates the activities that turn a user's cart into
// a committed order and then empty the cart.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	userID := input.Command.UserID
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "userId", userID)...)
	order, err := sequences.RunOrderCheckoutSequence(ctx, input.Command)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "userId", userID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
