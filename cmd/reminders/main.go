package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/maternalcare/sms-reminders/internal/api"
	"github.com/maternalcare/sms-reminders/internal/cache"
	"github.com/maternalcare/sms-reminders/internal/client"
	"github.com/maternalcare/sms-reminders/internal/config"
	"github.com/maternalcare/sms-reminders/internal/repo"
	"github.com/maternalcare/sms-reminders/internal/scheduler"
	"github.com/maternalcare/sms-reminders/internal/service"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadAll()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := repo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		slog.Error("failed to connect to mongo", "error", err)
		os.Exit(1)
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to mongo", "database", cfg.Mongo.Database)

	var deliveries cache.DeliveryCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		deliveries = cache.NewRedisCache(rdb, cfg.Redis.TTL)
		slog.Info("connected to redis", "addr", cfg.Redis.Address)
	}

	users := repo.NewMongoUserRepo(db)
	logs := repo.NewMongoMessageLogRepo(db)
	sms := client.NewSMSClient(
		cfg.Gateway.URL,
		cfg.Gateway.AccountSID,
		cfg.Gateway.AuthToken,
		cfg.Gateway.FromNumber,
	)

	directory := service.NewDirectory(users)
	dispatcher := service.NewDispatcher(users, logs, sms, deliveries)

	sched, err := scheduler.New(cfg.Scheduler.ReminderSpec, cfg.Scheduler.EducationSpec, dispatcher)
	if err != nil {
		slog.Error("failed to build scheduler", "error", err)
		os.Exit(1)
	}
	sched.Start()
	slog.Info("schedules registered",
		"reminders", cfg.Scheduler.ReminderSpec,
		"education", cfg.Scheduler.EducationSpec,
	)

	handler := api.NewHandler(directory, dispatcher)
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: loggingMiddleware(api.Router(handler)),
	}

	go func() {
		slog.Info("http server listening", "addr", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		slog.Error("mongo disconnect failed", "error", err)
	}

	slog.Info("server exited")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
