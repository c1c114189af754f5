package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	fulfillmentclient "github.com/Apurer/go-commerce-api/internal/clients/http/fulfillment"
	catalogmemory "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	customermemory "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/persistence/postgres"
	extfulfillment "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/external/fulfillment"
	ordersmemory "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
	platformmigrations "github.com/Apurer/go-commerce-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-commerce-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-commerce-api/internal/platform/postgres"
	orderactivities "github.com/Apurer/go-commerce-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-commerce-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "commerce-worker"
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

	orderService, cleanupRepos := buildOrderService(ctx, logger, instruments)
	defer cleanupRepos()
	orderActivities := orderactivities.NewActivities(orderService, buildFulfillmentNotifier(logger))

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	w.RegisterActivityWithOptions(orderActivities.NotifyFulfillment, activity.RegisterOptions{Name: orderactivities.NotifyFulfillmentActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildOrderService wires the placement service against postgres when a DSN
// is configured, or against in-memory stores otherwise. The worker and the
// API must point at the same backend for placements to be visible to both.
func buildOrderService(ctx context.Context, logger *slog.Logger, instruments *platformobservability.Instruments) (ordersports.Service, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			cleanup()
			os.Exit(1)
		}
		logger.Info("worker repositories configured with postgres")
		core := ordersapp.NewService(
			orderspostgres.NewRepository(db),
			customerpostgres.NewRepository(db),
			catalogpostgres.NewRepository(db),
			platformpostgres.NewTxRunner(db),
		)
		return decorate(core, logger, instruments), cleanup
	}
	logger.Warn("worker using in-memory repositories; placements are lost on restart")
	core := ordersapp.NewService(
		ordersmemory.NewRepository(),
		customermemory.NewRepository(),
		catalogmemory.NewRepository(),
		ordersmemory.NewTransactor(),
	)
	return decorate(core, logger, instruments), cleanup
}

func decorate(core ordersports.Service, logger *slog.Logger, instruments *platformobservability.Instruments) ordersports.Service {
	return ordersobs.New(
		core,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
}

// buildFulfillmentNotifier reads FULFILLMENT_BASE_URL. Without it the notify
// activity becomes a no-op, which keeps local runs free of a partner dependency.
func buildFulfillmentNotifier(logger *slog.Logger) ordersports.FulfillmentNotifier {
	baseURL := strings.TrimSpace(os.Getenv("FULFILLMENT_BASE_URL"))
	if baseURL == "" {
		logger.Warn("FULFILLMENT_BASE_URL not set, fulfillment notifications disabled")
		return nil
	}
	client, err := fulfillmentclient.NewClient(baseURL, nil)
	if err != nil {
		logger.Warn("invalid fulfillment base URL, notifications disabled", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("fulfillment notifications enabled", slog.String("baseUrl", baseURL))
	return extfulfillment.NewNotifier(client)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
