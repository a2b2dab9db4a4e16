package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"saldo/internal/amqp"
	"saldo/internal/analytics"
	"saldo/internal/auth"
	"saldo/internal/cache"
	"saldo/internal/cli"
	apphttp "saldo/internal/http"
	applog "saldo/internal/log"
	"saldo/internal/services"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig(applog.ComponentApp)

	store := cli.InitStore(logger, cfg)

	var publisher services.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPEnabled() {
		c, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.NewFields().WithError(err).WithErrorType(applog.ErrorTypeNetwork).Args()...)
			os.Exit(1)
		}
		amqpClient, publisher = c, c
		logger.Info("Publishing transaction events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled, transaction events are not published")
	}

	clock := analytics.SystemClock{}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	dashboard := services.NewDashboardService(store.Store, clock, services.DashboardCacheConfig{
		TTL:  cfg.CacheTTL,
		Size: cfg.CacheSize,
	}, logger)

	srv := apphttp.NewServer(apphttp.Config{
		Addr:               net.JoinHostPort("", cfg.Port),
		ClientURL:          cfg.ClientURL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, apphttp.Deps{
		Auth:         services.NewAuthService(store.Store, tokens, logger),
		Transactions: services.NewTransactionService(store.Store, publisher, dashboard, logger),
		Dashboard:    dashboard,
		Tokens:       tokens,
		Store:        store.Store,
		Clock:        clock,
		Logger:       logger,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("AMQP close error", "error", err)
			}
		}
		if err := store.Cleanup(); err != nil {
			logger.Warn("Store close error", "error", err)
		}
	})

	janitor := cache.NewJanitor(logger)
	for _, c := range dashboard.Cleaners() {
		janitor.Register(c)
	}
	go janitor.Run(ctx, 10*time.Minute)

	logger.Info("Starting saldo server",
		"port", cfg.Port,
		"backend", store.Type.String(),
		"cache_ttl", cfg.CacheTTL.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
