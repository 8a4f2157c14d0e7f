package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/programthis/order-cart-service/internal/domains/cart/domain"
	cartports "github.com/programthis/order-cart-service/internal/domains/cart/ports"
)

const tracerName = "github.com/programthis/order-cart-service/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
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

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
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

func (s *Service) GetOrCreate(ctx context.Context, userID int64) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetOrCreate",
		trace.WithAttributes(attribute.Int64("cart.user_id", userID)))
	defer span.End()

	cart, err := s.inner.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.Int64("cart.user_id", userID))
	}
	span.SetAttributes(attribute.Int("cart.lines", len(cart.Lines)))
	return cart, nil
}

func (s *Service) AddItem(ctx context.Context, userID, productID int64, quantity int32) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem",
		trace.WithAttributes(
			attribute.Int64("cart.user_id", userID),
			attribute.Int64("cart.product_id", productID),
			attribute.Int("cart.quantity", int(quantity)),
		))
	defer span.End()

	s.logInfo(ctx, "adding item to cart",
		slog.Int64("cart.user_id", userID), slog.Int64("cart.product_id", productID))
	cart, err := s.inner.AddItem(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item",
			slog.Int64("cart.user_id", userID), slog.Int64("cart.product_id", productID))
	}
	s.metrics.recordItemAdded(ctx)
	s.logInfo(ctx, "item added",
		slog.Int64("cart.id", cart.ID), slog.Int("cart.lines", len(cart.Lines)))
	return cart, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int32) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity",
		trace.WithAttributes(
			attribute.Int64("cart.user_id", userID),
			attribute.Int64("cart.product_id", productID),
			attribute.Int("cart.quantity", int(quantity)),
		))
	defer span.End()

	cart, err := s.inner.UpdateQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update quantity",
			slog.Int64("cart.user_id", userID), slog.Int64("cart.product_id", productID))
	}
	s.logInfo(ctx, "quantity updated",
		slog.Int64("cart.id", cart.ID), slog.Int64("cart.product_id", productID))
	return cart, nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID int64) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem",
		trace.WithAttributes(
			attribute.Int64("cart.user_id", userID),
			attribute.Int64("cart.product_id", productID),
		))
	defer span.End()

	cart, err := s.inner.RemoveItem(ctx, userID, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove item",
			slog.Int64("cart.user_id", userID), slog.Int64("cart.product_id", productID))
	}
	s.logInfo(ctx, "item removed",
		slog.Int64("cart.id", cart.ID), slog.Int64("cart.product_id", productID))
	return cart, nil
}

func (s *Service) Clear(ctx context.Context, userID int64) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear",
		trace.WithAttributes(attribute.Int64("cart.user_id", userID)))
	defer span.End()

	s.logInfo(ctx, "clearing cart", slog.Int64("cart.user_id", userID))
	cart, err := s.inner.Clear(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.Int64("cart.user_id", userID))
	}
	s.metrics.recordCleared(ctx)
	s.logInfo(ctx, "cart cleared", slog.Int64("cart.id", cart.ID))
	return cart, nil
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
	itemsAdded   metric.Int64Counter
	cartsCleared metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Number of items added to carts"))
	cartsCleared, _ := m.Int64Counter("cart.service.carts_cleared", metric.WithDescription("Number of carts cleared"))
	return serviceMetrics{itemsAdded: itemsAdded, cartsCleared: cartsCleared}
}

func (m serviceMetrics) recordItemAdded(ctx context.Context) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCleared(ctx context.Context) {
	if m.cartsCleared != nil {
		m.cartsCleared.Add(ctx, 1)
	}
}

var _ cartports.Service = (*Service)(nil)
