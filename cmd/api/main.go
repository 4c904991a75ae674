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
	"go.uber.org/multierr"

	"github.com/bautizosmaitte/storefront-api/api/routes"
	"github.com/bautizosmaitte/storefront-api/internal/cart"
	"github.com/bautizosmaitte/storefront-api/internal/catalog"
	"github.com/bautizosmaitte/storefront-api/internal/checkout"
	"github.com/bautizosmaitte/storefront-api/internal/favorites"
	"github.com/bautizosmaitte/storefront-api/internal/sales"
	"github.com/bautizosmaitte/storefront-api/pkg/config"
	"github.com/bautizosmaitte/storefront-api/pkg/db"
	"github.com/bautizosmaitte/storefront-api/pkg/kvstore"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
	"github.com/bautizosmaitte/storefront-api/pkg/metrics"
	redisclient "github.com/bautizosmaitte/storefront-api/pkg/redis"
	"github.com/bautizosmaitte/storefront-api/pkg/ventipay"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	kv, closeKV, err := newStateStore(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap state store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	catalogClient := catalog.NewClient(cfg.CMS)
	catalogService := catalog.NewService(catalogClient, logg)
	cartService := cart.NewService(kv, logg)
	favoritesService := favorites.NewService(kv, logg)
	paymentClient := ventipay.NewClient(cfg.VentiPay)
	checkoutService := checkout.NewService(cartService, paymentClient, logg)
	salesClient := sales.NewClient(cfg.CMS, logg)

	router := routes.NewRouter(routes.Deps{
		Config:    cfg,
		Logger:    logg,
		KV:        kv,
		Registry:  registry,
		Metrics:   httpMetrics,
		Catalog:   catalogService,
		Cart:      cartService,
		Favorites: favoritesService,
		Checkout:  checkoutService,
		Sales:     salesClient,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Normalized(),
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "storefront api stopped unexpectedly", err)
			_ = closeKV()
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, closeKV())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}

// newStateStore builds the cart/favorites persistence backend the config
// selects: redis by default, a gorm-backed table otherwise.
func newStateStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func() error, error) {
	switch cfg.Storage.Normalized() {
	case config.StorageBackendDatabase:
		dbClient, err := db.New(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		store, err := kvstore.NewDatabase(dbClient)
		if err != nil {
			_ = dbClient.Close()
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		client, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store := kvstore.NewRedis(client)
		return store, store.Close, nil
	}
}
