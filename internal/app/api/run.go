package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	catalogclient "github.com/programthis/order-cart-service/internal/clients/http/catalog"
	cartmemory "github.com/programthis/order-cart-service/internal/domains/cart/adapters/memory"
	cartobs "github.com/programthis/order-cart-service/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/programthis/order-cart-service/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/programthis/order-cart-service/internal/domains/cart/application"
	cartports "github.com/programthis/order-cart-service/internal/domains/cart/ports"
	ordersmemory "github.com/programthis/order-cart-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/programthis/order-cart-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/programthis/order-cart-service/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/programthis/order-cart-service/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/programthis/order-cart-service/internal/domains/orders/application"
	ordersports "github.com/programthis/order-cart-service/internal/domains/orders/ports"
	"github.com/programthis/order-cart-service/internal/platform/migrations"
	platformobservability "github.com/programthis/order-cart-service/internal/platform/observability"
	platformpostgres "github.com/programthis/order-cart-service/internal/platform/postgres"
	"github.com/programthis/order-cart-service/internal/server"
)

// Run boots the order-cart HTTP API with observability, repositories, the
// catalog gateway, and the checkout orchestrator wired.
func Run(ctx context.Context) error {
	const serviceName = "order-cart-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	cartRepo, ordersRepo, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	gateway, err := catalogclient.NewClient(cfg.CatalogBaseURL, &http.Client{Timeout: cfg.CatalogTimeout})
	if err != nil {
		return fmt.Errorf("failed to build catalog client: %w", err)
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

	var checkout ordersports.CheckoutOrchestrator = ordersworkflows.NewInlineCheckout(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal checkout unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		checkout = ordersworkflows.NewTemporalCheckout(temporalClient)
		logger.Info("Temporal checkout enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := server.ApiHandleFunctions{
		CartAPI:  server.NewCartAPI(cartService),
		OrderAPI: server.NewOrderAPI(orderService, checkout),
	}
	router := server.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("order-cart API listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := group.Wait(); err != nil {
		logger.Error("order-cart API server exited", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Repository, ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return cartmemory.NewRepository(), ordersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return cartmemory.NewRepository(), ordersmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		return cartmemory.NewRepository(), ordersmemory.NewRepository(), closeDB(db)
	}
	logger.Info("repositories configured with postgres")
	return cartpostgres.NewRepository(db), orderspostgres.NewRepository(db), closeDB(db)
}

func closeDB(db *gorm.DB) func() {
	return func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
