package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awass-id/awass-backend/internal/api"
	"github.com/awass-id/awass-backend/internal/config"
	"github.com/awass-id/awass-backend/internal/domain/admins"
	"github.com/awass-id/awass-backend/internal/domain/members"
	"github.com/awass-id/awass-backend/internal/domain/plans"
	"github.com/awass-id/awass-backend/internal/domain/renewals"
	"github.com/awass-id/awass-backend/internal/domain/transactions"
	"github.com/awass-id/awass-backend/internal/infra/db"
	httpx "github.com/awass-id/awass-backend/internal/infra/http"
	"github.com/awass-id/awass-backend/internal/infra/logger"
	"github.com/awass-id/awass-backend/internal/infra/notify"
	"github.com/awass-id/awass-backend/internal/infra/storage"
	"github.com/awass-id/awass-backend/internal/jobs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/example.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	planRepo := plans.NewRepo(pool)
	if err := planRepo.SeedDefaults(ctx); err != nil {
		log.Error("plan seeding failed", "err", err)
		return
	}
	log.Info("membership plans seeded")

	uploads, err := storage.New(cfg.Uploads.Dir)
	if err != nil {
		log.Error("upload store init failed", "err", err)
		return
	}

	memberRepo := members.NewRepo(pool)

	handler := api.NewHandler(api.Deps{
		Log:          log,
		Plans:        planRepo,
		Members:      memberRepo,
		Transactions: transactions.NewRepo(pool),
		Renewals:     renewals.NewRepo(pool),
		Admins:       admins.NewRepo(pool),
		Uploads:      uploads,
		Notify:       notify.New(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log),
		SeedSecret:   cfg.Admin.SeedSecret,
		Dev:          cfg.App.Env == "dev",
	})

	go jobs.RunSweeper(ctx, log, memberRepo, cfg.Sweep.Interval)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, cfg.Uploads.Dir, handler)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
