package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/mileage-cart/config"
	"github.com/d60-Lab/mileage-cart/internal/api"
	"github.com/d60-Lab/mileage-cart/internal/api/handler"
	"github.com/d60-Lab/mileage-cart/internal/cache"
	"github.com/d60-Lab/mileage-cart/internal/repository"
	"github.com/d60-Lab/mileage-cart/internal/service"
	"github.com/d60-Lab/mileage-cart/pkg/database"
	"github.com/d60-Lab/mileage-cart/pkg/logger"
	"github.com/d60-Lab/mileage-cart/pkg/tracing"
)

// @title Mileage Cart API
// @version 1.0
// @description 社区二手市场购物车服务：里程累计、条目激活切换。
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	defer database.Close(db)

	checks := []handler.HealthCheck{{
		Name: "database",
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}

	// 未配置 Redis 时总里程每次回源
	var totals cache.CartTotalCache = cache.NopCartTotalCache{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, cart total cache degraded", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		totals = cache.NewRedisCartTotalCache(rdb, cfg.Redis.CartTotalTTL)
		checks = append(checks, handler.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }})
	}

	cartSvc := service.NewCartService(
		repository.NewCartRepository(db),
		repository.NewPostRepository(db),
		repository.NewTradeRepository(db),
		totals,
	)
	router := api.NewRouter(cfg, handler.NewHandler(cartSvc, checks...))

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
}
