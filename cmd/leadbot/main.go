package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"leadbot/internal/bot"
	"leadbot/internal/config"
	"leadbot/internal/logger"
	"leadbot/internal/notify"
	"leadbot/internal/service"
	"leadbot/internal/storage/sqlite"
	"leadbot/internal/telegram"
	"leadbot/internal/telegram/state"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("leadbot: %v", err)
	}
}

func run() error {
	startedAt := time.Now()

	// CONFIG_PATH is optional: with no file the bot runs from env vars alone.
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		return err
	}

	tgBot, err := telegram.NewBot(cfg)
	if err != nil {
		return err
	}

	recipients := notify.NewRecipients(cfg.Telegram.AdminChatID, cfg.Telegram.CreatorID)
	notifier := notify.New(bot.NotifySender(tgBot), recipients)
	sessions := state.NewMemoryManager()
	repo := sqlite.NewLeadRepo(db)
	svc := service.NewIntake(repo, notifier, sessions, bot.RenderNotification)

	opts := bot.Wire(cfg, svc, sessions, recipients)
	opts.OnStart = func(context.Context) error {
		logger.App.Info("app ready",
			slog.String("event", "ready"),
			slog.Int("recipients", len(recipients)),
			slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
		)
		return nil
	}
	opts.OnStop = func(context.Context) error {
		logger.App.Info("shutting down...",
			slog.String("event", "shutdown"),
		)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return telegram.Run(ctx, tgBot, opts)
}
