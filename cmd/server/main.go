package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskflow/taskflow-api/internal/api"
	"github.com/taskflow/taskflow-api/internal/core/ports"
	"github.com/taskflow/taskflow-api/internal/core/service"
	"github.com/taskflow/taskflow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskflow/taskflow-api/internal/infrastructure/db/redis"
	"github.com/taskflow/taskflow-api/internal/infrastructure/queue"
	"github.com/taskflow/taskflow-api/internal/infrastructure/session"
	"github.com/taskflow/taskflow-api/internal/pkg/config"
	"github.com/taskflow/taskflow-api/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Session store: Redis when configured, in-process memory otherwise ---
	var sessions ports.SessionStore
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		sessions = redisdb.NewSessionStore(rdb, cfg.SessionTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions backed by redis")
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		log.Info().Msg("sessions kept in process memory")
	}

	// --- Notification pipeline ---
	notificationRepo := mongo.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(notificationRepo, log)
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notificationService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		DB:            db,
		Redis:         rdb,
		Sessions:      sessions,
		Notifications: notificationService,
		Notifier:      dispatcher,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting taskflow api")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
