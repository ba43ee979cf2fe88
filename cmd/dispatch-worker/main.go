package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/juvoapp/juvo-backend/internal/dispatch"
	"github.com/juvoapp/juvo-backend/internal/drivers"
	"github.com/juvoapp/juvo-backend/internal/orders"
	"github.com/juvoapp/juvo-backend/internal/shops"
	"github.com/juvoapp/juvo-backend/internal/vehicles"
	"github.com/juvoapp/juvo-backend/pkg/config"
	"github.com/juvoapp/juvo-backend/pkg/db"
	"github.com/juvoapp/juvo-backend/pkg/fcm"
	"github.com/juvoapp/juvo-backend/pkg/idempotency"
	"github.com/juvoapp/juvo-backend/pkg/logger"
	"github.com/juvoapp/juvo-backend/pkg/metrics"
	"github.com/juvoapp/juvo-backend/pkg/migrate"
	"github.com/juvoapp/juvo-backend/pkg/pubsub"
	"github.com/juvoapp/juvo-backend/pkg/redis"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "dispatch-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "dispatch-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		requireResource(ctx, logg, "dev migrations", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "failed to close redis client", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(ctx, "failed to close pubsub client", err)
		}
	}()

	fcmClient, err := fcm.New(context.Background(), cfg.FCM, logg)
	requireResource(ctx, logg, "fcm", err)

	subscription := pubsubClient.OrdersSubscription()
	if subscription == nil {
		requireResource(ctx, logg, "orders subscription", errors.New("subscription not configured"))
	}

	manager, err := idempotency.NewManager(redisClient, cfg.Dispatch.IdempotencyTTL)
	requireResource(ctx, logg, "idempotency manager", err)

	vehiclesSvc, err := vehicles.NewService(vehicles.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "vehicles service", err)

	driversRepo := drivers.NewRepository(dbClient.DB())
	driversSvc, err := drivers.NewService(driversRepo, vehiclesSvc)
	requireResource(ctx, logg, "drivers service", err)

	shopsRepo := shops.NewRepository(dbClient.DB())
	shopsSvc, err := shops.NewService(shopsRepo, driversRepo)
	requireResource(ctx, logg, "shops service", err)

	ordersSvc, err := orders.NewService(orders.NewRepository(dbClient.DB()), shopsRepo)
	requireResource(ctx, logg, "orders service", err)

	settings, err := dispatch.NewRuntimeSettings(redisClient, cfg.Dispatch, logg)
	requireResource(ctx, logg, "dispatch settings", err)

	notifier, err := dispatch.NewNotifier(fcmClient, logg)
	requireResource(ctx, logg, "dispatch notifier", err)

	orchestrator, err := dispatch.NewOrchestrator(dispatch.OrchestratorDeps{
		Orders:         ordersSvc,
		Shops:          shopsSvc,
		Vehicles:       vehiclesSvc,
		Drivers:        driversSvc,
		Notifier:       notifier,
		Settings:       settings,
		Recorder:       dispatch.NewRepository(dbClient.DB()),
		Metrics:        metrics.NewDispatchMetrics(prometheus.DefaultRegisterer),
		Logger:         logg,
		ActivityWindow: cfg.Dispatch.ActivityWindow(),
	})
	requireResource(ctx, logg, "dispatch orchestrator", err)

	consumer, err := dispatch.NewConsumer(subscription, manager, orchestrator, logg)
	requireResource(ctx, logg, "dispatch consumer", err)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env":      cfg.App.Env,
		"consumer": dispatch.ConsumerName,
	})
	logg.Info(runCtx, "dispatch worker ready")

	if err := consumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "dispatch worker failed", err)
		os.Exit(1)
	}

	logg.Info(runCtx, "dispatch worker shutting down gracefully")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
