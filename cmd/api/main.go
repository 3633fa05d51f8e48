package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/glow24organics/storefront-backend/api/routes"
	"github.com/glow24organics/storefront-backend/internal/cart"
	"github.com/glow24organics/storefront-backend/internal/checkout"
	"github.com/glow24organics/storefront-backend/internal/cod"
	"github.com/glow24organics/storefront-backend/internal/handoff"
	"github.com/glow24organics/storefront-backend/internal/orders"
	"github.com/glow24organics/storefront-backend/internal/payment"
	"github.com/glow24organics/storefront-backend/internal/storage"
	"github.com/glow24organics/storefront-backend/pkg/config"
	"github.com/glow24organics/storefront-backend/pkg/db"
	"github.com/glow24organics/storefront-backend/pkg/logger"
	"github.com/glow24organics/storefront-backend/pkg/metrics"
	"github.com/glow24organics/storefront-backend/pkg/migrate"
	"github.com/glow24organics/storefront-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	paymentMetrics := metrics.NewPaymentMetrics(promRegistry)

	sessionStore := storage.NewRedisStore(redisClient, cfg.Payment.SessionTTL)

	cartService, err := cart.NewService(sessionStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		dbClient,
		orders.NewRemoteClient(cfg.OrderAPI),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(sessionStore, cartService, orderService, cfg.Shipping, paymentMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	paymentService, err := payment.NewService(
		sessionStore,
		cartService,
		orderService,
		payment.SimulatedVerifier{Delay: cfg.Payment.VerificationDelay},
		cfg.Merchant,
		cfg.Payment,
		paymentMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	codService, err := cod.NewService(sessionStore, cartService, orderService, cfg.Payment, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cod service", err)
		os.Exit(1)
	}

	handoffService, err := handoff.NewService(sessionStore, cfg.Merchant, paymentMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create handoff service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			promRegistry,
			cartService,
			checkoutService,
			paymentService,
			codService,
			handoffService,
			orderService,
		),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}

		paymentService.Shutdown()
		logg.Info(ctx, "api server stopped")
	}
}
