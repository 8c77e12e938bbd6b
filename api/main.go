package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adhandevelop/taller-powerby/internal/config"
	"github.com/Adhandevelop/taller-powerby/internal/db"
	api "github.com/Adhandevelop/taller-powerby/internal/http"
	"github.com/Adhandevelop/taller-powerby/internal/http/handlers"
	rl "github.com/Adhandevelop/taller-powerby/internal/http/rate_limiter"
	"github.com/Adhandevelop/taller-powerby/internal/logger"
	"github.com/Adhandevelop/taller-powerby/internal/redissvc"
	"github.com/Adhandevelop/taller-powerby/internal/repo"
	"github.com/Adhandevelop/taller-powerby/internal/server"
)

// @title Productos API
// @version 1.0
// @description REST API for the product catalog table.
// @host localhost:3000
// @BasePath /
func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("verifying database connection...")
	database, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}
	defer database.Close()

	created, err := db.Migrate(ctx, database, cfg.Database.Table)
	if err != nil {
		return err
	}
	if created {
		log.Info("product table created", "table", cfg.Database.Table)
	}

	pgRepo := repo.NewPostgresProductRepository(database, cfg.Database.Table)
	serverTime, err := pgRepo.Ping(ctx)
	if err != nil {
		return err
	}
	count, err := pgRepo.Count(ctx)
	if err != nil {
		return err
	}
	log.Info("database connection established",
		"table", cfg.Database.Table,
		"server_time", serverTime,
		"products", count,
	)

	var productRepo repo.ProductRepository = pgRepo
	if cfg.Redis.Enabled() {
		redisService, err := redissvc.NewRedisService(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisService.Close()

		productRepo = repo.NewCachedProductRepository(pgRepo, redisService.Rdb(), cfg.Redis.TTL, log)
		log.Info("product cache enabled", "redis", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	var tasks []server.Task
	var limiter *rl.Limiter
	if cfg.RateLimit.Enabled() {
		limiter = rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		tasks = append(tasks, func(ctx context.Context) error {
			return limiter.RunCleanupLoop(ctx, time.Minute, 5*time.Minute)
		})
		log.Info("rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)
	}

	router := api.NewRouter(api.RouterConfig{
		Handler:        handlers.NewHandler(productRepo, log),
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter:    limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if err := server.Run(ctx, srv, cfg.Server.ShutdownTimeout, log, tasks...); err != nil {
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
