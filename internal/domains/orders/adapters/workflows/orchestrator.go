package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	ordersdomain "github.com/programthis/order-cart-service/internal/domains/orders/domain"
	"github.com/programthis/order-cart-service/internal/domains/orders/ports"
	checkoutworkflows "github.com/programthis/order-cart-service/internal/durable/temporal/workflows/checkout"
)

var (
	_ ports.CheckoutOrchestrator = (*TemporalCheckout)(nil)
	_ ports.CheckoutOrchestrator = (*InlineCheckout)(nil)
)

// TemporalCheckout starts checkout workflows on a Temporal cluster.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckout wires a Temporal client into the orchestrator.
func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: checkoutworkflows.CheckoutTaskQueue}
}

// Checkout starts the Temporal workflow that converts the user's cart into a
// committed order. A repeated idempotency key attaches to the already-running
// workflow instead of starting a second conversion.
func (o *TemporalCheckout) Checkout(ctx context.Context, input ports.CheckoutInput) (*ordersdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	workflowID := buildCheckoutWorkflowID(input)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.CheckoutWorkflowName,
		checkoutworkflows.CheckoutWorkflowInput{Command: input, TraceID: traceIDFromContext(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var order ordersdomain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, err
			}
			return &order, nil
		}
		return nil, err
	}
	var order ordersdomain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InlineCheckout executes the service directly without Temporal, useful for
// tests or dev fallbacks. The post-commit cart clearing is not retried.
type InlineCheckout struct {
	service ports.Service
}

// NewInlineCheckout wraps the orders service for synchronous execution.
func NewInlineCheckout(service ports.Service) *InlineCheckout {
	return &InlineCheckout{service: service}
}

// Checkout delegates to the application service without durable orchestration.
func (o *InlineCheckout) Checkout(ctx context.Context, input ports.CheckoutInput) (*ordersdomain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout not configured")
	}
	return o.service.CreateFromCart(ctx, input.UserID, input.ShippingAddress, input.PaymentMethod)
}

func buildCheckoutWorkflowID(input ports.CheckoutInput) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-checkout-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("order-checkout-%d-%s", input.UserID, uuid.NewString())
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// First 16 hex chars keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func traceIDFromContext(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
