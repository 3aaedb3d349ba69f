package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/Saucepai/BotinBlackDashboard/internal/audit"
	"github.com/Saucepai/BotinBlackDashboard/internal/bot"
	"github.com/Saucepai/BotinBlackDashboard/internal/config"
	"github.com/Saucepai/BotinBlackDashboard/internal/db"
	"github.com/Saucepai/BotinBlackDashboard/internal/economy"
	"github.com/Saucepai/BotinBlackDashboard/internal/nazar"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadBot()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	auditor := audit.New(cfg.AuditLogPath, logger)
	econ := economy.NewService(pool, logger, auditor)
	locator := nazar.New(cfg.NazarWebhookURL, logger)

	b, err := bot.New(cfg, logger, econ, locator)
	if err != nil {
		logger.Error("bot init failed", "err", err)
		os.Exit(1)
	}
	if err := b.Start(ctx); err != nil {
		logger.Error("bot start failed", "err", err)
		os.Exit(1)
	}
	defer b.Close()

	scheduler := cron.New()
	if cfg.NazarWebhookURL != "" {
		if _, err := scheduler.AddFunc(cfg.NazarCron, func() {
			if err := locator.Broadcast(context.Background()); err != nil {
				logger.Error("nazar broadcast failed", "err", err)
			}
		}); err != nil {
			logger.Error("schedule nazar broadcast failed", "cron", cfg.NazarCron, "err", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	logger.Info("frontier bot running")
	<-ctx.Done()
	logger.Info("frontier bot shutting down")
}
