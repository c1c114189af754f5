package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	commerceserver "github.com/Apurer/go-commerce-api/server"

	catalogmemory "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-commerce-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"

	customermemory "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/Apurer/go-commerce-api/internal/domains/customers/application"
	customerports "github.com/Apurer/go-commerce-api/internal/domains/customers/ports"

	ordersmemory "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"

	platformmigrations "github.com/Apurer/go-commerce-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-commerce-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-commerce-api/internal/platform/postgres"
)

// Run boots the commerce HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "commerce-api"
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
	cfg := LoadConfig()

	repos, cleanupRepos := buildRepositories(ctx, logger)
	defer cleanupRepos()

	customerService := customerapp.NewService(repos.customers)
	catalogService := catalogapp.NewService(repos.catalog)
	coreOrderService := ordersapp.NewService(repos.orders, repos.customers, repos.catalog, repos.tx)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := commerceserver.ApiHandleFunctions{
		CustomerAPI: commerceserver.NewCustomerAPI(customerService),
		CatalogAPI:  commerceserver.NewCatalogAPI(catalogService),
		OrderAPI:    commerceserver.NewOrderAPI(orderService, orderWorkflows),
	}

	router := commerceserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("commerce API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("commerce API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	customers customerports.Repository
	catalog   catalogports.Repository
	orders    ordersports.Repository
	tx        ordersports.Transactor
}

// buildRepositories wires the three bounded contexts against postgres when a
// DSN is configured, or against shared in-memory stores otherwise. All three
// contexts share one backend so the placement transaction spans them.
func buildRepositories(ctx context.Context, logger *slog.Logger) (repositories, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return memoryRepositories(), cleanup
	}
	if err := platformmigrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory repositories", slog.String("error", err.Error()))
		cleanup()
		return memoryRepositories(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		customers: customerpostgres.NewRepository(db),
		catalog:   catalogpostgres.NewRepository(db),
		orders:    orderspostgres.NewRepository(db),
		tx:        platformpostgres.NewTxRunner(db),
	}, cleanup
}

func memoryRepositories() repositories {
	return repositories{
		customers: customermemory.NewRepository(),
		catalog:   catalogmemory.NewRepository(),
		orders:    ordersmemory.NewRepository(),
		tx:        ordersmemory.NewTransactor(),
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
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
