package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/beer-catalog/internal/config"
	"github.com/nikolayk812/beer-catalog/internal/httpapi"
	"github.com/nikolayk812/beer-catalog/internal/logger"
	"github.com/nikolayk812/beer-catalog/internal/migrations"
	"github.com/nikolayk812/beer-catalog/internal/port"
	"github.com/nikolayk812/beer-catalog/internal/repository"
	"github.com/nikolayk812/beer-catalog/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const serviceName = "catalog"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "catalog stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cur, err := cfg.Shop.Currency()
	if err != nil {
		return err
	}

	pool, err := newPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.App.IsDev() && cfg.App.AutoMigrate {
		sqlDB := stdlib.OpenDBFromPool(pool)
		err := migrations.Run(ctx, sqlDB, "up")
		_ = sqlDB.Close()
		if err != nil {
			return err
		}
		logg.Info(ctx, "dev migrations applied")
	}

	var products port.ProductRepository = repository.NewProduct(pool)
	if cfg.Redis.Enabled() {
		client, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}()
		products = repository.NewCachedProducts(products, repository.NewProductCache(client), cfg.Redis.CacheTTL, logg)
	}

	metrics := httpapi.NewMetrics(prometheus.DefaultRegisterer)
	sessions := session.NewRegistry(repository.NewCart(pool), cur, logg,
		session.WithListener(metrics.ObserveCartEvent),
		session.WithIdleTTL(cfg.Session.IdleTTL))
	go sessions.RunJanitor(ctx, cfg.Session.SweepInterval)

	handler := httpapi.NewHandler(products, sessions, httpapi.Shop{
		WhatsAppPhone:    cfg.Shop.WhatsAppPhone,
		Greeting:         cfg.Shop.Greeting,
		CurrencySymbol:   cfg.Shop.CurrencySymbol,
		WithSubtotals:    cfg.Shop.WithSubtotals,
		PlaceholderImage: cfg.Shop.PlaceholderImage,
	}, logg)

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(handler, metrics, promhttp.Handler(), logg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"currency": cur.String(),
		"cache":    cfg.Redis.Enabled(),
	})
	logg.Info(logCtx, "starting catalog server")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func newPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
