package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/programthis/order-cart-service/internal/app/api"
	catalogclient "github.com/programthis/order-cart-service/internal/clients/http/catalog"
	cartmemory "github.com/programthis/order-cart-service/internal/domains/cart/adapters/memory"
	cartobs "github.com/programthis/order-cart-service/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/programthis/order-cart-service/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/programthis/order-cart-service/internal/domains/cart/application"
	cartports "github.com/programthis/order-cart-service/internal/domains/cart/ports"
	ordersmemory "github.com/programthis/order-cart-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/programthis/order-cart-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/programthis/order-cart-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/programthis/order-cart-service/internal/domains/orders/application"
	ordersports "github.com/programthis/order-cart-service/internal/domains/orders/ports"
	orderactivities "github.com/programthis/order-cart-service/internal/durable/temporal/activities/orders"
	checkoutworkflow "github.com/programthis/order-cart-service/internal/durable/temporal/workflows/checkout"
	"github.com/programthis/order-cart-service/internal/platform/migrations"
	platformobservability "github.com/programthis/order-cart-service/internal/platform/observability"
	platformpostgres "github.com/programthis/order-cart-service/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-cart-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cartRepo, ordersRepo, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	gateway, err := catalogclient.NewClient(cfg.CatalogBaseURL, &http.Client{Timeout: cfg.CatalogTimeout})
	if err != nil {
		logger.Error("failed to build catalog client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cartService := cartobs.New(
		cartapp.NewService(cartRepo, gateway),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
	orderService := ordersobs.New(
		ordersapp.NewService(ordersRepo, cartService, gateway),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService, cartService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflow.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflow.CheckoutWorkflow, workflow.RegisterOptions{Name: checkoutworkflow.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	w.RegisterActivityWithOptions(activities.ClearCart, activity.RegisterOptions{Name: orderactivities.ClearCartActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflow.CheckoutTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, cfg api.Config, logger *slog.Logger) (cartports.Repository, ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return cartmemory.NewRepository(), ordersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("worker failed to connect to postgres (falling back to memory)", slog.String("error", err.Error()))
		return cartmemory.NewRepository(), ordersmemory.NewRepository(), func() {}
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to run migrations (falling back to memory)", slog.String("error", err.Error()))
		return cartmemory.NewRepository(), ordersmemory.NewRepository(), cleanup
	}
	logger.Info("worker repositories configured with postgres")
	return cartpostgres.NewRepository(db), orderspostgres.NewRepository(db), cleanup
}
