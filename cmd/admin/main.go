// Command admin runs moderation actions against the database without the HTTP API.
package main

import (
	"context"
	"estatehub/backend/internal/account"
	"estatehub/backend/internal/appeal"
	"estatehub/backend/internal/complaint"
	"estatehub/backend/internal/config"
	"estatehub/backend/internal/listing"
	"estatehub/backend/internal/localization"
	"estatehub/backend/internal/logger"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/storage"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const usage = `Usage: admin <command> [args]

Commands:
  ban <user_id> [hours]                                  block a user (no hours: permanent)
  unban <user_id>                                        lift a block
  complaint-status <id> <status> [resolution]            move a complaint
  resolve-appeal <appeal_id> <approved|rejected> [resp]  decide an appeal (needs ADMIN_USER_ID)
  property-status <id> <status> [reason]                 move a property
  promote <user_id>                                      grant the admin role
`

func main() {
	cfg := config.Load()
	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.OpenPostgres(cfg.DB)
	if err != nil {
		zl.Fatal("failed to connect database", zap.Error(err))
	}

	// Redis is optional here. The user row decides bans; the API re-sets or
	// drops the ban:<id> marker on the next lookup for that user.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zl.Warn("redis unavailable, continuing without it", zap.Error(err))
		_ = rdb.Close()
		rdb = nil
	}
	s := storage.NewStorageService(db, rdb)

	loc, err := localization.NewDefault()
	if err != nil {
		zl.Fatal("failed to load locales", zap.Error(err))
	}
	notifications := notification.NewService(s, loc, zl)

	app := &app{
		Accounts:   account.NewService(s, account.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), notifications, zl),
		Complaints: complaint.NewService(s, notifications, notification.NopAlerter{}, zl),
		Appeals:    appeal.NewService(s, notifications, notification.NopAlerter{}, zl),
		Listings:   listing.NewService(s, notifications, zl),
		AdminID:    os.Getenv("ADMIN_USER_ID"),
	}

	if err := app.run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
