package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/programthis/order-cart-service/internal/domains/orders/domain"
	ordersports "github.com/programthis/order-cart-service/internal/domains/orders/ports"
)

const tracerName = "github.com/programthis/order-cart-service/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateFromCart(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateFromCart",
		trace.WithAttributes(attribute.Int64("order.user_id", userID)))
	defer span.End()

	s.logInfo(ctx, "creating order from cart", slog.Int64("order.user_id", userID))
	order, err := s.inner.CreateFromCart(ctx, userID, shippingAddress, paymentMethod)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.Int64("order.user_id", userID))
	}
	s.metrics.recordCreated(ctx, order.Status)
	s.logInfo(ctx, "order created",
		slog.Int64("order.id", order.ID),
		slog.String("order.total", order.TotalAmount.String()))
	return order, nil
}

func (s *Service) PlaceFromCart(ctx context.Context, userID int64, shippingAddress, paymentMethod string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceFromCart",
		trace.WithAttributes(attribute.Int64("order.user_id", userID)))
	defer span.End()

	order, err := s.inner.PlaceFromCart(ctx, userID, shippingAddress, paymentMethod)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("order.user_id", userID))
	}
	s.metrics.recordCreated(ctx, order.Status)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", order.ID),
		slog.String("order.total", order.TotalAmount.String()))
	return order, nil
}

func (s *Service) GetByID(ctx context.Context, orderID int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetByID",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	order, err := s.inner.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", orderID))
	}
	return order, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByUser",
		trace.WithAttributes(attribute.Int64("order.user_id", userID)))
	defer span.End()

	orders, err := s.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Int64("order.user_id", userID))
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status ordersdomain.Status) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateStatus",
		trace.WithAttributes(
			attribute.Int64("order.id", orderID),
			attribute.String("order.status", string(status)),
		))
	defer span.End()

	s.logInfo(ctx, "updating order status",
		slog.Int64("order.id", orderID), slog.String("order.status", string(status)))
	order, err := s.inner.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", orderID))
	}
	s.logInfo(ctx, "order status updated",
		slog.Int64("order.id", order.ID), slog.String("order.status", string(order.Status)))
	return order, nil
}

func (s *Service) Delete(ctx context.Context, orderID int64) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.Int64("order.id", orderID))
	if err := s.inner.Delete(ctx, orderID); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", orderID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", orderID))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	ordersCreated metric.Int64Counter
	ordersDeleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.orders_created", metric.WithDescription("Number of orders created from carts"))
	ordersDeleted, _ := m.Int64Counter("orders.service.orders_deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{ordersCreated: ordersCreated, ordersDeleted: ordersDeleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status ordersdomain.Status) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.ordersDeleted != nil {
		m.ordersDeleted.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
