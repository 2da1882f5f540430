package main

import (
	"context"
	"errors"
	"estatehub/backend/internal/account"
	"estatehub/backend/internal/api/handler"
	"estatehub/backend/internal/appeal"
	"estatehub/backend/internal/booking"
	"estatehub/backend/internal/complaint"
	"estatehub/backend/internal/config"
	"estatehub/backend/internal/listing"
	"estatehub/backend/internal/localization"
	"estatehub/backend/internal/logger"
	"estatehub/backend/internal/messaging"
	"estatehub/backend/internal/metrics"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/notifyhub"
	"estatehub/backend/internal/review"
	"estatehub/backend/internal/storage"
	"estatehub/backend/internal/telegram"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDependencies(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := storage.OpenPostgres(cfg.DB)
	if err != nil {
		zl.Fatal("failed to connect PostgreSQL", zap.Error(err))
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zl.Fatal("failed to connect Redis", zap.Error(err))
	}

	// 3. Міграції (Створення таблиць)
	if err := storage.Migrate(db); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	zl.Info("database and redis connections established, migrations complete")
	return db, rdb
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zl.Info("starting EstateHub backend", zap.String("addr", cfg.HTTPAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(ctx, cfg, zl)
	s := storage.NewStorageService(db, rdb)

	loc, err := localization.NewDefault()
	if err != nil {
		zl.Fatal("failed to load locales", zap.Error(err))
	}
	notifications := notification.NewService(s, loc, zl)

	// 2. Hub сповіщень та слухач Redis pub/sub
	hub := notifyhub.NewHub(zl)
	go hub.Run(ctx)
	go hub.StartPubSubListener(ctx, s)

	complaints := complaint.NewService(s, notifications, notification.NopAlerter{}, zl)
	appeals := appeal.NewService(s, notifications, notification.NopAlerter{}, zl)

	if cfg.TelegramBotToken != "" {
		bot, err := telegram.NewBotService(cfg.TelegramBotToken, cfg.TelegramAdminChatID,
			telegram.ServiceQueues{Complaints: complaints, Appeals: appeals}, zl)
		if err != nil {
			zl.Fatal("failed to start telegram bot", zap.Error(err))
		}
		complaints.Alerter = bot.Notifier
		appeals.Alerter = bot.Notifier
		go bot.Run(ctx)
	} else {
		zl.Warn("TELEGRAM_BOT_TOKEN not set, moderator alerts are disabled")
	}

	tokens := account.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	h := handler.NewHandler(handler.Services{
		Accounts:      account.NewService(s, tokens, notifications, zl),
		Listings:      listing.NewService(s, notifications, zl),
		Complaints:    complaints,
		Appeals:       appeals,
		Bookings:      booking.NewService(s, notifications, zl),
		Messages:      messaging.NewService(s, notifications, zl),
		Reviews:       review.NewService(s),
		Notifications: notifications,
	}, hub, zl)

	limiter := handler.NewRateLimiter(cfg.Rate.RPS, cfg.Rate.Burst)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup(10 * time.Minute)
			}
		}
	}()

	// 3. Налаштування Gin та роутингу
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(zl), metrics.Middleware())
	h.RegisterRoutes(r, limiter)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		zl.Warn("failed to close redis", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
